package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/metrics"
)

// addRequest 是 /add 的请求体。两个操作数均为必填 JSON 数值；
// 使用指针以区分「缺失」与合法的 0。
type addRequest struct {
	A *float64 `json:"a" binding:"required"`
	B *float64 `json:"b" binding:"required"`
}

// addResponse 是 /add 的成功响应体。
type addResponse struct {
	Result float64 `json:"result"`
}

// @Summary      服务信息
// @Description  返回服务名称、版本与运行状态的静态载荷
// @Tags         api
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.cfg.Service.Name,
		"version": h.cfg.Service.Version,
		"status":  "ok",
		"message": "Welcome to the securecalc API",
	})
}

// @Summary      两数求和
// @Description  接收两个数值操作数并返回其和；任一操作数缺失或非数值时返回 422 与字段级错误
// @Tags         api
// @Accept       json
// @Produce      json
// @Param        body body addRequest true "{a, b}"
// @Success      200 {object} addResponse
// @Failure      422 {object} map[string]interface{}
// @Router       /add [post]
func (h *Handler) addNumbers(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details := validationDetails(err)
		for _, d := range details {
			metrics.ValidationErrors.WithLabelValues(d.Field).Inc()
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"details": details,
		})
		return
	}

	// 标准 IEEE 754 加法语义：负数、零、整数/小数混合均直接相加，不做溢出处理。
	result := *req.A + *req.B
	metrics.Calculations.Inc()
	h.auditSvc.Record(c, *req.A, *req.B, result, c.ClientIP())
	c.JSON(http.StatusOK, addResponse{Result: result})
}

// @Summary      健康检查
// @Tags         ops
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      计算流水
// @Description  按时间倒序返回最近的计算审计记录（仅在 audit.enable 时注册）
// @Tags         ops
// @Produce      json
// @Success      200 {array} map[string]interface{}
// @Failure      500 {object} map[string]string
// @Router       /api/history [get]
func (h *Handler) apiHistory(c *gin.Context) {
	list, err := h.auditSvc.Recent(c, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, rec := range list {
		out = append(out, gin.H{
			"a":          rec.OperandA,
			"b":          rec.OperandB,
			"result":     rec.Result,
			"ip":         rec.IPAddress,
			"created_at": rec.CreatedAt.Unix(),
		})
	}
	c.JSON(http.StatusOK, out)
}
