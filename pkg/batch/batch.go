package batch

// DownloadRequest 定义了一次批量下载请求，由 API 层从 JSON 请求体中解析而来。
// 请求一旦被接受就不再修改。
type DownloadRequest struct {
	// 要下载的图片 URL 列表，允许出现重复项。
	ImageURLs []string `json:"imageUrls"`

	// 同一时刻允许处于下载中的最大任务数，必须 >= 1。
	MaxConcurrency int `json:"maxDownloadAtOnce"`
}

// OutcomeKind 表示单个 URL 的处理结果类型。
type OutcomeKind int

const (
	// OutcomeSuccess 表示文件已成功写入存储目录。
	OutcomeSuccess OutcomeKind = iota
	// OutcomeInvalidURL 表示 URL 语法或协议校验失败，从未发起过网络请求。
	OutcomeInvalidURL
	// OutcomeInvalidFileType 表示请求成功但声明的内容类型不受支持，文件未落盘。
	OutcomeInvalidFileType
	// OutcomeFailed 表示重试耗尽或出现了不可恢复的错误。
	OutcomeFailed
)

// Outcome 是一个 URL 的最终处理结果。每个去重后的 URL 恰好对应一个 Outcome。
type Outcome struct {
	Kind OutcomeKind

	// StorageID 仅在 Kind 为 OutcomeSuccess 时有效，是文件在存储目录中的随机标识符（不含扩展名）。
	StorageID string

	// Reason 记录失败或被拒绝的原因，成功时为空。
	Reason string
}

// Success 构造一个下载成功的结果。
func Success(storageID string) Outcome {
	return Outcome{Kind: OutcomeSuccess, StorageID: storageID}
}

// InvalidURL 构造一个 URL 校验失败的结果。
func InvalidURL(reason string) Outcome {
	return Outcome{Kind: OutcomeInvalidURL, Reason: reason}
}

// InvalidFileType 构造一个文件类型不受支持的结果。
func InvalidFileType(reason string) Outcome {
	return Outcome{Kind: OutcomeInvalidFileType, Reason: reason}
}

// Failed 构造一个下载失败的结果。
func Failed(reason string) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}

// DownloadReport 是一次批量下载的汇总报告，直接序列化为 API 响应。
type DownloadReport struct {
	// 只要有任意一个 URL 下载成功，Success 即为 true。
	Success bool `json:"success"`

	// 人类可读的汇总信息。
	Message string `json:"message"`

	// 成功下载的 URL 到存储标识符的映射。
	URLAndNames map[string]string `json:"urlAndNames"`

	SuccessCount   int `json:"successCount"`
	FailureCount   int `json:"failureCount"`
	DuplicateCount int `json:"duplicateCount"`

	// 校验失败的 URL 列表与文件类型不受支持的 URL 列表，按字典序排列。
	InvalidURLs         []string `json:"invalidUrls"`
	InvalidFileTypeURLs []string `json:"invalidFileTypeUrls"`
}
