package domain

type PageInfo struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	Offset     int
	HasNext    bool
	HasPrev    bool
}
