package middleware

import (
	"time"

	"derm-go/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// VisitLogger 访问记录中间件
// 在认证之后对每个请求写一条访问记录
// 尽力而为：写入失败只记日志，绝不中断请求
func VisitLogger(visitRepo *repository.VisitLogRepository, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := GetUserID(c); ok {
			if err := visitRepo.Record(userID, time.Now()); err != nil {
				logger.WithFields(logrus.Fields{
					"user_id": userID,
					"path":    c.Request.URL.Path,
				}).WithError(err).Warn("写入访问记录失败")
			}
		}

		c.Next()
	}
}
