//go:build !unix

package files

// ownerIDs 非 unix 平台没有 uid/gid
func ownerIDs(string) (uint32, uint32, bool) {
	return 0, 0, false
}
