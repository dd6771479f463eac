package entities

// BookRow is one normalized catalog record as stored in the books table.
// Field order is the column order of the table.
type BookRow struct {
	ASIN               string   `gorm:"column:asin;index" json:"asin"`
	Title              string   `gorm:"column:title;type:text" json:"title"`
	LenTitle           int      `gorm:"column:len_title" json:"len_title"`
	Description        string   `gorm:"column:description;type:text" json:"description"`
	LenDescription     int      `gorm:"column:len_description" json:"len_description"`
	Category           string   `gorm:"column:category" json:"category"`
	Price              float64  `gorm:"column:price" json:"price"`
	ImageURL           string   `gorm:"column:imurl" json:"imurl"`
	AlsoViewed         []string `gorm:"column:also_viewed;type:text;serializer:json" json:"also_viewed"`
	AlsoBought         []string `gorm:"column:also_bought;type:text;serializer:json" json:"also_bought"`
	BoughtTogether     []string `gorm:"column:bought_together;type:text;serializer:json" json:"bought_together"`
	BuyAfterViewing    []string `gorm:"column:buy_after_viewing;type:text;serializer:json" json:"buy_after_viewing"`
	SalesRankCategory  string   `gorm:"column:sales_rank_category" json:"sales_rank_category"`
	SalesRankCode      int64    `gorm:"column:sales_rank_code" json:"sales_rank_code"`
	LenAlsoViewed      int      `gorm:"column:len_also_viewed" json:"len_also_viewed"`
	LenAlsoBought      int      `gorm:"column:len_also_bought" json:"len_also_bought"`
	LenBoughtTogether  int      `gorm:"column:len_bought_together" json:"len_bought_together"`
	LenBuyAfterViewing int      `gorm:"column:len_buy_after_viewing" json:"len_buy_after_viewing"`
}

func (BookRow) TableName() string {
	return "books"
}

// ReviewRow is one normalized review as stored in the reviews table.
// Field order is the column order of the table.
type ReviewRow struct {
	ASIN                    string  `gorm:"column:asin;index" json:"asin"`
	HelpfulCount            int64   `gorm:"column:helpful_count" json:"helpful_count"`
	TotalHelpfulVotes       int64   `gorm:"column:total_helpful_votes" json:"total_helpful_votes"`
	HelpfulScore            float64 `gorm:"column:helpful_score" json:"helpful_score"`
	Overall                 float64 `gorm:"column:overall" json:"overall"`
	Review                  string  `gorm:"column:review;type:text" json:"review"`
	LenReviewCharacterCount int     `gorm:"column:len_review_character_count" json:"len_review_character_count"`
	ReviewTime              string  `gorm:"column:review_time;size:10" json:"review_time"` // YYYY-MM-DD
	ReviewerName            string  `gorm:"column:reviewer_name" json:"reviewer_name"`
	Summary                 string  `gorm:"column:summary;type:text" json:"summary"`
	UnixReviewTime          int64   `gorm:"column:unix_review_time" json:"unix_review_time"`
}

func (ReviewRow) TableName() string {
	return "reviews"
}
