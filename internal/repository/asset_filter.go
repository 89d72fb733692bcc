package repository

// AssetFilter narrows asset listings. Zero value means "everything".
type AssetFilter struct {
	Q        string // matches tag, name or serial number
	Status   string
	Category string
	Limit    int // 0 means no cap
}
