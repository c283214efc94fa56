package proxy

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Snapquiz/internal/dto"
	"github.com/lshigami/Snapquiz/internal/service"
	"github.com/rs/zerolog/log"
)

type GeminiProxyController struct {
	proxyService service.GeminiProxyService
}

func NewGeminiProxyController(proxyService service.GeminiProxyService) *GeminiProxyController {
	return &GeminiProxyController{proxyService: proxyService}
}

// Forward godoc
// @Summary Forward an image to Gemini with the quiz prompt
// @Description Keeps the Gemini key on the server. The upstream status code and JSON body are relayed as they are.
// @Tags Proxy
// @Accept json
// @Produce json
// @Param request body dto.ProxyRequest true "Base64 image"
// @Success 200 {object} object "Gemini generateContent response"
// @Failure 400 {object} dto.ProxyErrorResponse "Image data is required"
// @Failure 405 {object} dto.ProxyErrorResponse "Method not allowed"
// @Failure 500 {object} dto.ProxyErrorResponse "API key not configured"
// @Failure 502 {object} dto.ProxyErrorResponse "Gemini unreachable"
// @Router /api/gemini-proxy [post]
func (c *GeminiProxyController) Forward(ctx *gin.Context) {
	var req dto.ProxyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.ImageData == "" {
		ctx.JSON(http.StatusBadRequest, dto.ProxyErrorResponse{Error: "Image data is required"})
		return
	}

	status, body, err := c.proxyService.Forward(ctx.Request.Context(), req.ImageData, req.MimeType)
	switch {
	case errors.Is(err, service.ErrProxyKeyMissing):
		log.Error().Msg("Gemini proxy called without a configured API key")
		ctx.JSON(http.StatusInternalServerError, dto.ProxyErrorResponse{Error: "API key not configured"})
		return
	case err != nil:
		log.Error().Err(err).Msg("Gemini proxy: forwarding failed")
		ctx.JSON(http.StatusBadGateway, dto.ProxyErrorResponse{Error: err.Error()})
		return
	}
	ctx.Data(status, "application/json", body)
}

func (c *GeminiProxyController) MethodNotAllowed(ctx *gin.Context) {
	ctx.JSON(http.StatusMethodNotAllowed, dto.ProxyErrorResponse{Error: "Method not allowed"})
}
