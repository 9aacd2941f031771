package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"nadlan-proxy/internal/model"
	"nadlan-proxy/internal/parse"
	"nadlan-proxy/internal/upstream"
)

const (
	defaultDealLimit = 8
	maxDealLimit     = 12
)

type assetDealsRequest struct {
	ObjectID     string  `json:"ObjectID"`
	DescLayerID  string  `json:"DescLayerID"`
	ResultLable  string  `json:"ResultLable"`
	ObjectIDType string  `json:"ObjectIDType"`
	ObjectKey    string  `json:"ObjectKey"`
	X            float64 `json:"X"`
	Y            float64 `json:"Y"`
	PageNo       int     `json:"PageNo"`
	Rooms        int     `json:"Rooms"`
}

// AssetDeals handles the POST /deals request: fetch one page of transactions
// from the registry for an object previously returned by /search.
func (h *Handler) AssetDeals(c *gin.Context) {
	var req assetDealsRequest
	// A missing or malformed body just means no fields were supplied; the
	// required-field check below produces the real error message.
	_ = c.ShouldBindJSON(&req)

	var missing []string
	if req.ObjectID == "" {
		missing = append(missing, "ObjectID")
	}
	if req.DescLayerID == "" {
		missing = append(missing, "DescLayerID")
	}
	if req.ResultLable == "" {
		missing = append(missing, "ResultLable")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Missing fields: %s", strings.Join(missing, ", "))})
		return
	}

	if req.ObjectIDType == "" {
		req.ObjectIDType = "text"
	}
	if req.ObjectKey == "" {
		req.ObjectKey = "UNIQ_ID"
	}
	if req.PageNo <= 0 {
		req.PageNo = 1
	}

	payload := &upstream.AssetDealsPayload{
		FillterRoomNum:       req.Rooms,
		ResultLable:          req.ResultLable,
		ResultType:           1,
		ObjectID:             req.ObjectID,
		ObjectIDType:         req.ObjectIDType,
		ObjectKey:            req.ObjectKey,
		DescLayerID:          req.DescLayerID,
		X:                    req.X,
		Y:                    req.Y,
		OriginalSearchString: req.ResultLable,
		CurrentLavel:         3,
		Navs:                 []any{},
		PageNo:               req.PageNo,
		OrderByFilled:        "DEALDATETIME",
		OrderByDescending:    true,
	}

	resp, err := h.registry.AssetDeals(c.Request.Context(), payload)
	if err != nil {
		log.Printf("/deals error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	deals := resp.AllResults
	if deals == nil {
		deals = []json.RawMessage{}
	}
	c.JSON(http.StatusOK, gin.H{
		"deals":      deals,
		"totalCount": resp.TotalCount,
		"pageNo":     req.PageNo,
	})
}

// DatastoreDeals handles the GET /deals request: transaction lookup against
// the open-data deals dataset, filtered by city and optionally street and
// room count.
func (h *Handler) DatastoreDeals(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'city'"})
		return
	}
	street := strings.TrimSpace(c.Query("street"))
	rooms := strings.TrimSpace(c.Query("rooms"))

	limit := defaultDealLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxDealLimit {
		limit = maxDealLimit
	}

	ds := h.cfg.Datastore
	filters := map[string]string{ds.Columns.CityName: city}
	if street != "" {
		filters[ds.Columns.Street] = street
	}
	if rooms != "" {
		filters[ds.Columns.Rooms] = rooms
	}

	query := upstream.SearchQuery{
		ResourceID: ds.Resources.Deals,
		Filters:    filters,
		Limit:      limit,
		Sort:       ds.DealsSort,
	}

	result, err := h.datastore.Search(c.Request.Context(), query)
	if err != nil {
		log.Printf("/deals error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if len(result.Records) == 0 && street != "" {
		// Street spellings in the deals dataset rarely match the official
		// street register exactly; retry once with the street moved from the
		// exact filter to the free-text query.
		delete(query.Filters, ds.Columns.Street)
		query.Q = street
		result, err = h.datastore.Search(c.Request.Context(), query)
		if err != nil {
			log.Printf("/deals fallback error: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
	}

	deals := make([]model.Deal, 0, len(result.Records))
	for _, record := range result.Records {
		deals = append(deals, parse.Deal(record))
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals, "total": result.Total})
}
