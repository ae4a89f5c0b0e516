package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/parser"
)

func (h *handler) generateRemittances(c *gin.Context) {
	var in remittancesGenerateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		h.abortWithError(c, bindingError(err))
		return
	}

	start, err := parser.ParsePeriodStart(in.StartDate)
	if err != nil {
		h.abortWithError(c, invalid("start_date: %v", err))
		return
	}
	end, err := parser.ParsePeriodEnd(in.EndDate)
	if err != nil {
		h.abortWithError(c, invalid("end_date: %v", err))
		return
	}

	res, err := h.store.CreateRemittances(c.Request.Context(), db.GenerateRemittancesRequest{
		AmountPerHour: *in.AmountPerHour,
		Start:         start,
		End:           end,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	detail := "Data successfully saved."
	if len(res.Created) == 0 && res.Skipped > 0 {
		detail = fmt.Sprintf("All %d users were already remitted for this period.", res.Skipped)
	}
	c.JSON(http.StatusCreated, remittancesGenerateOut{
		Detail:  detail,
		Created: len(res.Created),
		Skipped: res.Skipped,
	})
}

func (h *handler) getAllRemittances(c *gin.Context) {
	remittances, err := h.store.GetRemittances(c.Request.Context(), db.RemittanceFilter{
		Status: c.Query("status"),
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out := make([]remittanceOut, 0, len(remittances))
	for _, r := range remittances {
		out = append(out, newRemittanceOut(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) markRemittancePaid(c *gin.Context) {
	id, err := queryUUID(c, "remittance_id")
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	remittance, err := h.store.MarkRemittancePaid(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRemittanceOut(*remittance))
}
