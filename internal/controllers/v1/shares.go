package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thaishare/backend/internal/httputil"
	"github.com/thaishare/backend/internal/service"
)

// Controller serves the shares API.
type Controller struct {
	shares        *service.ShareService
	maxUploadSize int64
}

func NewController(shares *service.ShareService, maxUploadSize int64) Controller {
	return Controller{
		shares:        shares,
		maxUploadSize: maxUploadSize,
	}
}

func (co Controller) RegisterShareRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsShares)
		r.GET("", co.GetShares)
		r.POST("", co.CreateShare)
	}
	{
		r.OPTIONS("/:id", co.OptionsShareDetail)
		r.GET("/:id", co.GetShare)
		r.DELETE("/:id", co.DeleteShare)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Shares
// @Success		204
// @Router			/v1/shares [options]
func (co Controller) OptionsShares(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Shares
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		uint	true	"ID of the share"
// @Router			/v1/shares/{id} [options]
func (co Controller) OptionsShareDetail(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	_, err = co.shares.Get(c.Request.Context(), id)
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Get shares
// @Description	Returns all shares, the most recent first
// @Tags			Shares
// @Produce		json
// @Success		200	{object}	ShareListResponse
// @Failure		500	{object}	ShareListResponse
// @Router			/v1/shares [get]
func (co Controller) GetShares(c *gin.Context) {
	shares, err := co.shares.List(c.Request.Context())
	if err != nil {
		e := httputil.ErrorMessage(c, err)
		c.JSON(httputil.Status(err), ShareListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Share, 0, len(shares))
	for _, share := range shares {
		data = append(data, newShare(c, share))
	}

	c.JSON(http.StatusOK, ShareListResponse{
		Data: data,
	})
}

// @Summary		Create share
// @Description	Splits the amount between the people and creates a PromptPay QR code for the amount per person
// @Tags			Shares
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	ShareResponse
// @Failure		400			{object}	ShareResponse
// @Failure		413			{object}	ShareResponse
// @Failure		500			{object}	ShareResponse
// @Param			date		formData	string	false	"Date of the expense in YYYY-MM-DD format. Defaults to today"
// @Param			title		formData	string	true	"What the expense was for"
// @Param			promptpay	formData	string	true	"Phone number, tax ID or e-wallet ID receiving the payments"
// @Param			people		formData	int		true	"Number of people to split the amount between"
// @Param			amount		formData	string	true	"Total amount in THB"
// @Param			evidence	formData	file	false	"Receipt or other evidence of the expense"
// @Router			/v1/shares [post]
func (co Controller) CreateShare(c *gin.Context) {
	in, closeEvidence, err := httputil.BindShareForm(c, co.maxUploadSize)
	defer closeEvidence()
	if err != nil {
		e := httputil.ErrorMessage(c, err)
		c.JSON(httputil.Status(err), ShareResponse{
			Error: &e,
		})
		return
	}

	share, err := co.shares.Create(c.Request.Context(), in)
	if err != nil {
		e := httputil.ErrorMessage(c, err)
		c.JSON(httputil.Status(err), ShareResponse{
			Error: &e,
		})
		return
	}

	data := newShare(c, share)
	c.JSON(http.StatusCreated, ShareResponse{
		Data: &data,
	})
}

// @Summary		Get share
// @Description	Returns a specific share
// @Tags			Shares
// @Produce		json
// @Success		200	{object}	ShareResponse
// @Failure		400	{object}	ShareResponse
// @Failure		404	{object}	ShareResponse
// @Failure		500	{object}	ShareResponse
// @Param			id	path		uint	true	"ID of the share"
// @Router			/v1/shares/{id} [get]
func (co Controller) GetShare(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		e := httputil.ErrorMessage(c, err)
		c.JSON(httputil.Status(err), ShareResponse{
			Error: &e,
		})
		return
	}

	share, err := co.shares.Get(c.Request.Context(), id)
	if err != nil {
		e := httputil.ErrorMessage(c, err)
		c.JSON(httputil.Status(err), ShareResponse{
			Error: &e,
		})
		return
	}

	data := newShare(c, share)
	c.JSON(http.StatusOK, ShareResponse{
		Data: &data,
	})
}

// @Summary		Delete share
// @Description	Deletes a share together with its evidence and QR code. Deleting a share that does not exist succeeds.
// @Tags			Shares
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		uint	true	"ID of the share"
// @Router			/v1/shares/{id} [delete]
func (co Controller) DeleteShare(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	err = co.shares.Delete(c.Request.Context(), id)
	if err != nil {
		httputil.NewError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
