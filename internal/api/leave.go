package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Date parsing

	"leave_tracker/internal/domain" // Domain models
	"leave_tracker/internal/leave"  // Lifecycle service
	"leave_tracker/internal/middleware"
	"leave_tracker/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// dateLayout is the wire format for leave dates.
const dateLayout = "2006-01-02"

// invalidatedPages is how many cached listing pages a mutation clears.
const invalidatedPages = 5

// ApplyLeaveRequest represents a leave application
type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"` // earned or sick
	FromDate  string `json:"from_date" binding:"required"`  // YYYY-MM-DD
	ToDate    string `json:"to_date" binding:"required"`    // YYYY-MM-DD
	Reason    string `json:"reason" binding:"required"`     // Free-text reason
}

// ApplyLeaveHandler submits a new leave application for the authenticated user
func ApplyLeaveHandler(svc *leave.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c) // Get principal from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ApplyLeaveRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide all required fields"})
			return
		}
		// Parse the inclusive date range
		from, errFrom := time.ParseInLocation(dateLayout, req.FromDate, time.UTC)
		to, errTo := time.ParseInLocation(dateLayout, req.ToDate, time.UTC)
		if errFrom != nil || errTo != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD."})
			return
		}
		created, err := svc.Apply(c.Request.Context(), p, leave.ApplyInput{
			LeaveType: req.LeaveType,
			FromDate:  from,
			ToDate:    to,
			Reason:    req.Reason,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		// Invalidate the caches the new request shows up in
		ctx := c.Request.Context()
		for _, status := range []string{"", domain.StatusPending} {
			utils.InvalidatePages(ctx, rdb, utils.OwnLeavesPrefix(p.UserID, status), invalidatedPages)
			utils.InvalidatePages(ctx, rdb, utils.AdminLeavesPrefix(status, ""), invalidatedPages)
		}
		_ = utils.DeleteCache(ctx, rdb, utils.AnalyticsKey())
		// Return success response
		c.JSON(http.StatusCreated, gin.H{
			"message": "Leave application submitted successfully",
			"leave":   created,
		})
	}
}

// pageParam reads the 1-based page number from the query string.
func pageParam(c *gin.Context) int {
	page := 1 // Default page
	if pStr := c.Query("page"); pStr != "" {
		// Convert page to integer
		if v, err := strconv.Atoi(pStr); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	return page
}

// MyLeavesHandler returns the authenticated user's requests, newest first
func MyLeavesHandler(svc *leave.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c) // Get principal from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		status := c.Query("status") // Optional status filter
		page := pageParam(c)        // Page number
		ctx := c.Request.Context()
		cacheKey := utils.OwnLeavesPrefix(p.UserID, status) + ":page:" + strconv.Itoa(page)
		var cached leave.RequestPage
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"data": cached, "cached": true})
			return
		}
		result, err := svc.ListOwn(ctx, p, status, page)
		if err != nil {
			respondErr(c, err)
			return
		}
		// Cache the page for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, result, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"data": result, "cached": false})
	}
}

// LeaveBalanceHandler returns the authenticated user's remaining balances
func LeaveBalanceHandler(svc *leave.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c) // Get principal from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.BalanceKey(p.UserID)
		var cached leave.BalanceSummary
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"data": cached, "cached": true})
			return
		}
		balance, err := svc.Balance(ctx, p)
		if err != nil {
			respondErr(c, err)
			return
		}
		// Cache the balance for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, balance, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"data": balance, "cached": false})
	}
}
