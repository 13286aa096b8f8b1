package identity

import (
	"mirakextractor/internal/core/cpe"
	"mirakextractor/internal/core/model"
)

type vendorProduct struct {
	vendor  string
	product string
}

// vendors 产品名 -> (厂商, 下游使用的产品名)
// RHEL 在下游 (包括包管理器选择) 一律使用 "enterprise"
var vendors = map[string]vendorProduct{
	"ubuntu":     {vendor: "canonical", product: "ubuntu"},
	"debian":     {vendor: "debian", product: "debian"},
	"rhel":       {vendor: "redhat", product: "enterprise"},
	"enterprise": {vendor: "redhat", product: "enterprise"},
}

// Derive 由产品名推导厂商，未知产品厂商为空
func Derive(product string) (vendor, canonicalProduct string) {
	if vp, ok := vendors[product]; ok {
		return vp.vendor, vp.product
	}
	return "", product
}

// NewHostIdentity 构造操作系统身份并合成 CPE
func NewHostIdentity(product, version string, source SourceKind) model.HostIdentity {
	vendor, product := Derive(product)
	return model.HostIdentity{
		Vendor:  vendor,
		Product: product,
		Version: version,
		CPEName: cpe.OSName(vendor, product, version),
		Source:  string(source),
	}
}

// Supported 产品是否属于已知的发行版集合
func Supported(product string) bool {
	_, ok := vendors[product]
	return ok
}
