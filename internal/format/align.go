package format

// Align4 returns n aligned up to the next 4-byte boundary.
// Containers start on 4-byte boundaries and array slots follow the tag table
// padded to one.
//
// Example:
//
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(5) = 8
func Align4(n int) int {
	return (n + AlignmentMask) &^ AlignmentMask
}

// ArraySlotsOffset returns the position of the first slot of an array whose
// count word starts at nodeOff and holds count elements.
func ArraySlotsOffset(nodeOff, count int) int {
	return Align4(nodeOff + ContainerHeaderSize + count)
}
