package dto

// Stats are the headline counters of the home page.
type Stats struct {
	Circuits  int64 `json:"circuits"`
	Drivers   int64 `json:"drivers"`
	RacesDone int64 `json:"racesDone"`
	Laps      int64 `json:"laps"`
}

// Upload is a stored file.
type Upload struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
