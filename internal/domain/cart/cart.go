package cart

import (
	"github.com/google/uuid"
)

// Cart is the session-held shopping cart: item id -> requested quantity plus
// totals precomputed by the storefront. It lives in the session store and is
// never persisted to the database.
type Cart struct {
	Items            map[uuid.UUID]int64 `json:"items"`
	Total            int64               `json:"total"`
	TaxIncludedTotal int64               `json:"tax_included_total"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
