package entity

// Bucket is one named partition of the image corpus. The set of buckets is
// static configuration; Count is the number of rows in the backing table.
type Bucket struct {
	Name  string `mapstructure:"name" json:"name"`
	Count int    `mapstructure:"count" json:"count"`
}

// ImageRecord is a row from one of the relational bucket tables.
// Only URL is selected in plain mode; the rest are filled in json mode.
type ImageRecord struct {
	URL       string  `json:"url"`
	Height    int     `json:"height"`
	Width     int     `json:"width"`
	Ratio     float64 `json:"ratio"`
	Landscape bool    `json:"landscape"`
}

// PixivImage is the raw document shape stored in the pixiv collection.
// The four URL fields are size variants and any of them may be missing.
type PixivImage struct {
	ID          int64    `bson:"id"`
	Tags        []string `bson:"tags"`
	Title       string   `bson:"title"`
	Description string   `bson:"description"`
	User        string   `bson:"user"`
	UserID      int64    `bson:"userId"`
	FullWidth   int      `bson:"fullWidth"`
	FullHeight  int      `bson:"fullHeight"`
	Original    string   `bson:"original,omitempty"`
	Regular     string   `bson:"regular,omitempty"`
	Small       string   `bson:"small,omitempty"`
	Thumb       string   `bson:"thumb,omitempty"`
}

// PixivResult is the public projection of a PixivImage with the chosen,
// proxy-rewritten URL attached.
type PixivResult struct {
	ID          int64    `json:"id"`
	Tags        []string `json:"tags"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	User        string   `json:"user"`
	UserID      int64    `json:"userId"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	URL         string   `json:"url"`
}
