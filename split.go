package robomaster

// SplitCommand chunks a finished command buffer into the ordered
// sequence of CAN-sized frames that carries it. The device reassembles
// the original byte stream from the frame payloads in order, so the
// chunks of one command must reach the wire without interleaving.
// Empty input yields no chunks.
func SplitCommand(command []byte) [][]byte {
	if len(command) == 0 {
		return nil
	}

	frames := make([][]byte, 0, (len(command)+MaxFrameData-1)/MaxFrameData)
	for start := 0; start < len(command); start += MaxFrameData {
		end := start + MaxFrameData
		if end > len(command) {
			end = len(command)
		}
		frames = append(frames, command[start:end])
	}
	return frames
}
