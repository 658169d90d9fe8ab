// Package router 提供 HTTP 路由配置
package router

import (
	"ad-workflow-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	projectHandler *handler.ProjectHandler,
	videoHandler *handler.VideoHandler,
	deliverableHandler *handler.DeliverableHandler,
) {
	// 项目管理
	projects := v1.Group("/projects")
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/:pid", projectHandler.GetProject)
		projects.PUT("/:pid", projectHandler.UpdateProject)
		projects.DELETE("/:pid", projectHandler.DeleteProject)

		// 项目生命周期
		projects.POST("/:pid/submit", projectHandler.SubmitProject)
		projects.POST("/:pid/cancel", projectHandler.CancelProject)
		projects.POST("/:pid/complete", projectHandler.CompleteProject)

		// 阶段推进
		projects.POST("/:pid/advance", projectHandler.AdvancePhase)
		projects.GET("/:pid/advance-status", projectHandler.AdvanceStatus)
		projects.GET("/:pid/phase-summary", projectHandler.PhaseSummary)

		// 项目下的视频
		projects.GET("/:pid/videos", videoHandler.ListVideos)
		projects.POST("/:pid/videos", videoHandler.CreateVideo)

		// 项目图包
		projects.GET("/:pid/pack-images", projectHandler.ListPackImages)
		projects.POST("/:pid/pack-images", projectHandler.AttachPackImage)
		projects.DELETE("/:pid/pack-images/:image_id", projectHandler.RemovePackImage)
	}

	// 视频管理
	videos := v1.Group("/videos")
	{
		videos.GET("/:vid", videoHandler.GetVideo)
		videos.PUT("/:vid", videoHandler.UpdateVideo)
		videos.DELETE("/:vid", videoHandler.DeleteVideo)

		// 阶段内状态与审批
		videos.PATCH("/:vid/status", videoHandler.UpdatePhaseStatus)
		videos.PATCH("/:vid/approvals", videoHandler.MarkApproval)

		// 回退与发布
		videos.POST("/:vid/regress", videoHandler.RegressVideo)
		videos.POST("/:vid/approve", videoHandler.ApproveFinal)
		videos.PUT("/:vid/ad-link", videoHandler.SetAdLink)
		videos.POST("/:vid/nomenclature/regenerate", videoHandler.RegenerateNomenclature)

		// 视频下的素材
		videos.GET("/:vid/deliverables", deliverableHandler.ListDeliverables)
		videos.POST("/:vid/deliverables", deliverableHandler.CreateDeliverable)
	}

	// 素材管理
	deliverables := v1.Group("/deliverables")
	{
		deliverables.GET("/:did", deliverableHandler.GetDeliverable)
		deliverables.PUT("/:did", deliverableHandler.UpdateDeliverable)
		deliverables.PATCH("/:did/nomenclature", deliverableHandler.UpdateNomenclature)
		deliverables.DELETE("/:did", deliverableHandler.DeleteDeliverable)
	}
}
