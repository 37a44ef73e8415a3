package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"leave_tracker/internal/domain" // Domain models
	"leave_tracker/internal/leave"  // Lifecycle service
	"leave_tracker/internal/middleware"
	"leave_tracker/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// AllLeavesHandler returns requests across all users with owner identity
func AllLeavesHandler(svc *leave.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c) // Get principal from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		status := c.Query("status")   // Optional status filter
		keyword := c.Query("keyword") // Optional reason keyword filter
		page := pageParam(c)          // Page number
		ctx := c.Request.Context()
		cacheKey := utils.AdminLeavesPrefix(status, keyword) + ":page:" + strconv.Itoa(page)
		var cached leave.AdminRequestPage
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"data": cached, "cached": true})
			return
		}
		result, err := svc.ListAll(ctx, p, status, keyword, page)
		if err != nil {
			respondErr(c, err)
			return
		}
		// Cache the page for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, result, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"data": result, "cached": false})
	}
}

// UpdateStatusRequest carries an administrator decision
type UpdateStatusRequest struct {
	Status        string `json:"status" binding:"required"` // approved or rejected
	AdminComments string `json:"admin_comments"`            // Optional comment
}

// UpdateStatusHandler decides a pending request
func UpdateStatusHandler(svc *leave.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c) // Get principal from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the request ID from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid leave request id"})
			return
		}
		var req UpdateStatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be 'approved' or 'rejected'"})
			return
		}
		decided, err := svc.Decide(c.Request.Context(), p, uint(id), req.Status, req.AdminComments)
		if err != nil {
			respondErr(c, err)
			return
		}
		// Invalidate every cache the decision touches: the owner's
		// balance and listings, the admin listings and the analytics
		ctx := c.Request.Context()
		_ = utils.DeleteCache(ctx, rdb, utils.BalanceKey(decided.UserID))
		for _, status := range []string{"", domain.StatusPending, decided.Status} {
			utils.InvalidatePages(ctx, rdb, utils.OwnLeavesPrefix(decided.UserID, status), invalidatedPages)
			utils.InvalidatePages(ctx, rdb, utils.AdminLeavesPrefix(status, ""), invalidatedPages)
		}
		_ = utils.DeleteCache(ctx, rdb, utils.AnalyticsKey())
		// Return the decided request
		c.JSON(http.StatusOK, gin.H{
			"message": "Leave request " + decided.Status + " successfully",
			"leave":   decided,
		})
	}
}

// AnalyticsHandler returns the aggregate request counts
func AnalyticsHandler(svc *leave.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c) // Get principal from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.AnalyticsKey()
		var cached leave.Analytics
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"data": cached, "cached": true})
			return
		}
		result, err := svc.Analytics(ctx, p)
		if err != nil {
			respondErr(c, err)
			return
		}
		// Cache the aggregates for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, result, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"data": result, "cached": false})
	}
}
