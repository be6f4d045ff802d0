package router

import (
	"net/http"

	controller "github.com/Itish41/ActionScribe/controller"
	middleware "github.com/Itish41/ActionScribe/middleware"
	service "github.com/Itish41/ActionScribe/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services bundles what the handlers need.
type Services struct {
	Notes       *service.NoteService
	ActionItems *service.ActionItemService
	Search      *service.SearchService
	Stats       *service.StatsService
}

// NewServices wires every service onto one database handle.
func NewServices(db *gorm.DB, index *service.NoteIndex, archive *service.Archive, logger *zap.Logger) Services {
	return Services{
		Notes:       service.NewNoteService(db, index, archive, logger),
		ActionItems: service.NewActionItemService(db, logger),
		Search:      service.NewSearchService(db, index, logger),
		Stats:       service.NewStatsService(db, logger),
	}
}

// Options tune the engine; the zero value uses the shared rate limiters.
type Options struct {
	Global *middleware.RateLimiter
	Strict *middleware.RateLimiter
}

func New(svc Services, logger *zap.Logger, opts Options) *gin.Engine {
	if opts.Global == nil {
		opts.Global = middleware.GlobalRateLimiter
	}
	if opts.Strict == nil {
		opts.Strict = middleware.StrictRateLimiter
	}

	notes := controller.NewNoteController(svc.Notes, logger)
	items := controller.NewActionItemController(svc.ActionItems)
	search := controller.NewSearchController(svc.Search)
	stats := controller.NewStatsController(svc.Stats)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	// Global rate limiter for most routes
	router.Use(opts.Global.Limit())

	// Healthcheck endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.POST("/extract", controller.PreviewExtraction)

	n := router.Group("/notes")
	n.GET("", notes.ListNotes)
	n.POST("", notes.CreateNote)
	n.POST("/upload", opts.Strict.Limit(), notes.UploadNote)
	n.GET("/:id", notes.GetNote)
	n.PATCH("/:id", notes.PatchNote)
	n.PUT("/:id", notes.UpdateNote)
	n.DELETE("/:id", notes.DeleteNote)
	n.POST("/:id/reextract", notes.ReextractNote)

	a := router.Group("/action-items")
	a.GET("", items.ListActionItems)
	a.POST("", items.CreateActionItem)
	a.PUT("/bulk/complete", opts.Strict.Limit(), items.BulkComplete)
	a.DELETE("/bulk", opts.Strict.Limit(), items.BulkDelete)
	a.GET("/:id", items.GetActionItem)
	a.PATCH("/:id", items.PatchActionItem)
	a.PUT("/:id", items.UpdateActionItem)
	a.DELETE("/:id", items.DeleteActionItem)
	a.PUT("/:id/complete", items.CompleteActionItem)

	s := router.Group("/search")
	s.GET("", search.SearchAll)
	s.GET("/notes", search.SearchNotes)
	s.GET("/action-items", search.SearchActionItems)

	st := router.Group("/stats")
	st.GET("", stats.GetStatistics)
	st.GET("/action-items", stats.GetActionItemStats)
	st.GET("/notes", stats.GetNoteStats)

	return router
}
