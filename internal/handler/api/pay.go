package api

import (
	"errors"
	"net/http"
	"net/url"

	"ec-checkout/internal/handler/httperr"
	"ec-checkout/internal/handler/middleware"
	"ec-checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Pages owned by the storefront application.
const (
	profileEditPath = "/profile/"
	storefrontPath  = "/"
)

type PayHandler struct {
	checkoutUseCase usecase.CheckoutUseCase
}

func NewPayHandler(checkoutUseCase usecase.CheckoutUseCase) *PayHandler {
	return &PayHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

// @Summary Initiate checkout
// @Description Convert the session cart into a pending order and redirect to the hosted payment page
// @Tags pay
// @Security CookieAuth
// @Success 303 {string} string "redirect to the payment page"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /pay/ [post]
func (h *PayHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("user_id missing from context"), "Internal server error", nil)
		return
	}

	redirect, err := h.checkoutUseCase.InitiateCheckout(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProfileIncomplete):
			redirectWithNotice(c, profileEditPath, "配送のためプロフィールを埋めてください。")
		case errors.Is(err, usecase.ErrCartEmpty):
			redirectWithNotice(c, storefrontPath, "カートが空です。")
		case errors.Is(err, usecase.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, usecase.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Item no longer available", nil)
		case errors.Is(err, usecase.ErrInsufficientStock):
			httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", nil)
		case errors.Is(err, usecase.ErrPaymentSessionFailed):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment service unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, redirect.URL)
}

// @Summary Payment success callback
// @Description Confirm the pending order named by order_id and discard the session cart
// @Tags pay
// @Security CookieAuth
// @Param order_id query string true "Order ID passed through the success URL"
// @Success 200 {object} map[string]string
// @Router /pay/success/ [get]
func (h *PayHandler) Success(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("user_id missing from context"), "Internal server error", nil)
		return
	}

	// A missing or malformed order_id renders the page without mutation, the
	// same as an order that does not belong to this user.
	orderID, err := uuid.Parse(c.Query("order_id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}

	if err := h.checkoutUseCase.ConfirmOrder(c.Request.Context(), userID, orderID); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// @Summary Payment cancel callback
// @Description Release every pending order of the current user and restore stock
// @Tags pay
// @Security CookieAuth
// @Success 200 {object} map[string]string
// @Router /pay/cancel/ [get]
func (h *PayHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("user_id missing from context"), "Internal server error", nil)
		return
	}

	if err := h.checkoutUseCase.ReleasePendingOrders(c.Request.Context(), userID); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancel"})
}

func redirectWithNotice(c *gin.Context, path, notice string) {
	c.Redirect(http.StatusSeeOther, path+"?notice="+url.QueryEscape(notice))
}
