/**
 * RPKI 关键文件信息采集
 * @author: sun977
 * @date: 2026.10.14
 * @description: 采集 routinator 配置文件、缓存目录等关键路径的类型、权限与属主，
 *               不存在或非普通文件/目录的路径跳过
 */

package files

import (
	"io/fs"
	"os"
	"os/user"
	"strconv"

	"mirakextractor/internal/core/model"
	"mirakextractor/internal/pkg/logger"
)

// Inspect 按输入顺序返回每个有效路径的信息
func Inspect(paths []string) []model.FileInfo {
	out := make([]model.FileInfo, 0, len(paths))
	for _, path := range paths {
		info, ok := inspect(path)
		if ok {
			out = append(out, info)
		}
	}
	return out
}

func inspect(path string) (model.FileInfo, bool) {
	st, err := os.Stat(path)
	if err != nil {
		logger.Warnf("strategic path %s skipped: %v", path, err)
		return model.FileInfo{}, false
	}

	var kind string
	switch {
	case st.IsDir():
		kind = model.FileTypeDirectory
	case st.Mode().IsRegular():
		kind = model.FileTypeFile
	default:
		logger.Warnf("strategic path %s skipped: not a regular file or directory", path)
		return model.FileInfo{}, false
	}

	uid, gid, ok := ownerIDs(path)
	owner := model.FileOwner{}
	if ok {
		owner.User = userName(uid)
		owner.Group = groupName(gid)
	}

	return model.FileInfo{
		Type:       kind,
		FileName:   path,
		Permission: permissionDigits(st.Mode()),
		Owner:      owner,
	}, true
}

// permissionDigits 0754 -> {owner: 7, group: 5, others: 4}
func permissionDigits(mode fs.FileMode) model.FilePermission {
	perm := mode.Perm()
	return model.FilePermission{
		Owner:  int(perm>>6) & 7,
		Group:  int(perm>>3) & 7,
		Others: int(perm) & 7,
	}
}

// userName 查不到用户名时退回数字 ID
func userName(uid uint32) string {
	id := strconv.FormatUint(uint64(uid), 10)
	if u, err := user.LookupId(id); err == nil {
		return u.Username
	}
	return id
}

func groupName(gid uint32) string {
	id := strconv.FormatUint(uint64(gid), 10)
	if g, err := user.LookupGroupId(id); err == nil {
		return g.Name
	}
	return id
}
