package reporter

import (
	"strconv"
	"strings"
)

// String 可读的单行表示，形如 {'appsFound':[...], 'redeExternal': {...}, 'strategicFiles': [...]}
func (r *Report) String() string {
	doc := r.Dict()
	var b strings.Builder

	b.WriteString("{'appsFound':[")
	for i, app := range doc.AppsFound {
		if i > 0 {
			b.WriteString(", ")
		}
		writeDict(&b, []string{"type", "vendor", "product", "version", "cpeName"},
			[]string{quote(app.Type), quote(app.Vendor), quote(app.Product), quote(app.Version), quote(app.CPEName)})
	}
	b.WriteString("], 'redeExternal': ")

	if doc.RedeExternal.IsSet() {
		rede := doc.RedeExternal
		ports := make([]string, 0, len(rede.OpenPorts))
		for _, p := range rede.OpenPorts {
			ports = append(ports, strconv.FormatUint(uint64(p), 10))
		}
		var useBy []string
		var names []string
		for _, p := range rede.PortsUseBy.Ports() {
			name, _ := rede.PortsUseBy.Get(p)
			useBy = append(useBy, strconv.FormatUint(uint64(p), 10))
			names = append(names, quote(name))
		}
		var inner strings.Builder
		writeDict(&inner, useBy, names)
		writeDict(&b, []string{"hostIP", "openPorts", "portsUseBy"},
			[]string{quote(rede.HostIP), "[" + strings.Join(ports, ", ") + "]", inner.String()})
	} else {
		b.WriteString("{}")
	}

	b.WriteString(", 'strategicFiles': [")
	for i, f := range doc.StrategicFiles {
		if i > 0 {
			b.WriteString(", ")
		}
		var perm, owner strings.Builder
		writeDict(&perm, []string{"group", "owner", "others"},
			[]string{strconv.Itoa(f.Permission.Group), strconv.Itoa(f.Permission.Owner), strconv.Itoa(f.Permission.Others)})
		writeDict(&owner, []string{"user", "group"}, []string{quote(f.Owner.User), quote(f.Owner.Group)})
		writeDict(&b, []string{"type", "fileName", "permission", "owner"},
			[]string{quote(f.Type), quote(f.FileName), perm.String(), owner.String()})
	}
	b.WriteString("]}")
	return b.String()
}

// writeDict 键为字符串时加单引号，数字键原样输出
func writeDict(b *strings.Builder, keys, values []string) {
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		if _, err := strconv.Atoi(k); err == nil {
			b.WriteString(k)
		} else {
			b.WriteString(quote(k))
		}
		b.WriteString(": ")
		b.WriteString(values[i])
	}
	b.WriteByte('}')
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
