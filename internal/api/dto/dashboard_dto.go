package dto

// ChannelStats 频道统计，字段名与现有客户端保持一致
type ChannelStats struct {
	OwnerName        string `json:"ownerName"`
	TotalViews       int64  `json:"Totalviews"`
	TotalVideos      int64  `json:"Totalvideos"`
	TotalSubscribers int64  `json:"TotalSubscribers"`
	TotalLikes       int64  `json:"TotalLikes"`
}
