package upstream

import "encoding/json"

// AssetDealsPayload is the GetAssestAndDeals request body. Field names and
// constant values mirror what the nadlan.gov.il web client sends, upstream
// misspellings included.
type AssetDealsPayload struct {
	MoreAssestsType      int     `json:"MoreAssestsType"`
	FillterRoomNum       int     `json:"FillterRoomNum"`
	GridDisplayType      int     `json:"GridDisplayType"`
	ResultLable          string  `json:"ResultLable"`
	ResultType           int     `json:"ResultType"`
	ObjectID             string  `json:"ObjectID"`
	ObjectIDType         string  `json:"ObjectIDType"`
	ObjectKey            string  `json:"ObjectKey"`
	DescLayerID          string  `json:"DescLayerID"`
	Alert                any     `json:"Alert"`
	X                    float64 `json:"X"`
	Y                    float64 `json:"Y"`
	Gush                 string  `json:"Gush"`
	Parcel               string  `json:"Parcel"`
	ShowLotParcel        bool    `json:"showLotParcel"`
	ShowLotAddress       bool    `json:"showLotAddress"`
	OriginalSearchString string  `json:"OriginalSearchString"`
	MutipuleResults      bool    `json:"MutipuleResults"`
	ResultsOptions       any     `json:"ResultsOptions"`
	CurrentLavel         int     `json:"CurrentLavel"`
	Navs                 []any   `json:"Navs"`
	QueryMapParams       any     `json:"QueryMapParams"`
	IsHistorical         bool    `json:"isHistorical"`
	PageNo               int     `json:"PageNo"`
	OrderByFilled        string  `json:"OrderByFilled"`
	OrderByDescending    bool    `json:"OrderByDescending"`
	Distance             float64 `json:"Distance"`
}

// AssetDealsResponse models the slice of the GetAssestAndDeals response the
// service passes through. Individual deals stay raw; the client renders them.
type AssetDealsResponse struct {
	AllResults []json.RawMessage `json:"AllResults"`
	TotalCount int               `json:"TotalCount"`
}
