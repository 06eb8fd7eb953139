package m_price_file

// Collection and field names for provinces/{province}/files/{fileId}.
const (
	ProvincesCollection = "provinces"
	CollectionName      = "files"

	FileName          = "fileName"
	Commodity         = "commodity"
	CommodityDisplay  = "commodityDisplay"
	Month             = "month"
	Week              = "week"
	Year              = "year"
	Stores            = "stores"
	Categories        = "categories"
	UploadedBy        = "uploadedBy"
	UploadedByEmail   = "uploadedByEmail"
	UploadedAt        = "uploadedAt"
	Province          = "province"
	LastModified      = "lastModified"
	IsCustomCommodity = "isCustomCommodity"
)
