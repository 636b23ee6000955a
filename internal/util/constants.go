package util

// DatabaseMemory 对应 database.driver=memory，使用进程内 sqlite
const DatabaseMemory = "memory"

const (
	// 进度页展示的最近作答条数
	DefaultRecentAttempts = 10
	// 分析页每个学生展示的最近行为条数
	DefaultRecentActivities = 5
)

const ContextUserKey = "user"
