package merch

import (
	"net/http"
	"paiges_bagels_server/handling"

	"github.com/MonkyMars/gecho"
)

func (mrm *MerchRoutesManager) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := mrm.merchService.ListActiveItems(r.Context())
	if err != nil {
		handling.HandleServiceError(err, mrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(items),
		gecho.Send(),
	)
}
