//go:build unix

package files

import (
	"golang.org/x/sys/unix"

	"mirakextractor/internal/pkg/logger"
)

// ownerIDs 读取属主 uid/gid
func ownerIDs(path string) (uint32, uint32, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		logger.Debugf("stat %s failed: %v", path, err)
		return 0, 0, false
	}
	return st.Uid, st.Gid, true
}
