package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remitchain/remitd/intent"
	"github.com/remitchain/remitd/models"
	"github.com/remitchain/remitd/quote"
	"github.com/remitchain/remitd/rates"
	"github.com/remitchain/remitd/settle"
)

type Handler struct {
	rates     rates.Source
	admin     *rates.Service
	quotes    *quote.Engine
	intents   *intent.Ledger
	processor *settle.Processor
	receipts  *settle.Store
	sandbox   bool
}

func NewHandler(source rates.Source, admin *rates.Service, quotes *quote.Engine, intents *intent.Ledger, processor *settle.Processor, receipts *settle.Store, sandbox bool) *Handler {
	return &Handler{
		rates:     source,
		admin:     admin,
		quotes:    quotes,
		intents:   intents,
		processor: processor,
		receipts:  receipts,
		sandbox:   sandbox,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"sandbox": h.sandbox,
	})
}

func (h *Handler) GetRates(c *gin.Context) {
	snapshot := h.rates.Latest()
	c.JSON(http.StatusOK, gin.H{
		"corridor": models.CorridorUSDCINR,
		"fx":       snapshot.UsdcInr,
		"source":   snapshot.Source,
		"feeBps":   h.rates.FeeBps(),
		"asOf":     snapshot.UpdatedAt,
	})
}

type quoteRequest struct {
	AmountUSDC string `json:"amountUSDC"`
	Corridor   string `json:"corridor"`
}

func (h *Handler) PostQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, models.WrapError(models.ErrorKindValidation, err, "invalid request body"))
		return
	}

	result, err := h.quotes.GetQuote(req.AmountUSDC, req.Corridor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) PostIntent(c *gin.Context) {
	var req intent.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, models.WrapError(models.ErrorKindValidation, err, "invalid request body"))
		return
	}

	result, err := h.intents.CreateIntent(req, currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) PostConfirm(c *gin.Context) {
	var req settle.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, models.WrapError(models.ErrorKindValidation, err, "invalid request body"))
		return
	}

	receipt, err := h.processor.Confirm(c.Request.Context(), req, currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *Handler) GetReceipt(c *gin.Context) {
	receipt, err := h.receipts.GetReceipt(c.Param("id"), currentPrincipal(c), c.Query("share"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *Handler) PutAdminConfig(c *gin.Context) {
	var req rates.ConfigUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, models.WrapError(models.ErrorKindValidation, err, "invalid request body"))
		return
	}

	config, err := h.admin.UpdateConfig(req, currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *Handler) ListReceipts(c *gin.Context) {
	receipts, err := h.receipts.ListReceipts(currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}
