package dds

// mipDimension calculates the dimension of a mipmap level, halving per
// level with a floor of 1.
func mipDimension(base, level int) int {
	result := base >> level
	if result < 1 {
		return 1
	}

	return result
}
