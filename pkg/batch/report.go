package batch

import (
	"fmt"
	"sort"
	"strings"
)

// EmptyReport 返回空请求对应的报告：没有 URL 可处理，不产生任何副作用。
func EmptyReport() DownloadReport {
	return DownloadReport{
		Success:             false,
		Message:             "No image URLs supplied.",
		URLAndNames:         map[string]string{},
		InvalidURLs:         []string{},
		InvalidFileTypeURLs: []string{},
	}
}

// BuildReport 把所有 URL 的处理结果汇总成一份报告。
// outcomes 的键是去重后的 URL，duplicateCount 是输入中被合并掉的重复条目数。
// failureCount = 去重后的 URL 总数 - 成功数，即校验失败和类型不支持也计入失败。
func BuildReport(outcomes map[string]Outcome, duplicateCount int) DownloadReport {
	report := DownloadReport{
		URLAndNames:         map[string]string{},
		DuplicateCount:      duplicateCount,
		InvalidURLs:         []string{},
		InvalidFileTypeURLs: []string{},
	}

	for url, outcome := range outcomes {
		switch outcome.Kind {
		case OutcomeSuccess:
			report.SuccessCount++
			report.URLAndNames[url] = outcome.StorageID
		case OutcomeInvalidURL:
			report.InvalidURLs = append(report.InvalidURLs, url)
		case OutcomeInvalidFileType:
			report.InvalidFileTypeURLs = append(report.InvalidFileTypeURLs, url)
		}
	}

	report.FailureCount = len(outcomes) - report.SuccessCount
	report.Success = report.SuccessCount > 0

	// map 的遍历顺序不固定，排序后保证同样的输入产生同样的报告文本。
	sort.Strings(report.InvalidURLs)
	sort.Strings(report.InvalidFileTypeURLs)

	report.Message = buildMessage(&report)
	return report
}

// buildMessage 按固定顺序拼接汇总信息，计数为零的子句直接省略。
func buildMessage(r *DownloadReport) string {
	clauses := make([]string, 0, 3)
	if r.SuccessCount > 0 {
		clauses = append(clauses, fmt.Sprintf("%d downloaded successfully", r.SuccessCount))
	}
	if r.FailureCount > 0 {
		clauses = append(clauses, fmt.Sprintf("%d failed", r.FailureCount))
	}
	if r.DuplicateCount > 0 {
		clauses = append(clauses, fmt.Sprintf("%d duplicate URL(s) ignored", r.DuplicateCount))
	}

	msg := strings.Join(clauses, ", ") + "."

	if len(r.InvalidURLs) > 0 {
		msg += fmt.Sprintf(" %d Invalid URL(s): [ %s ].", len(r.InvalidURLs), strings.Join(r.InvalidURLs, ", "))
	}
	if len(r.InvalidFileTypeURLs) > 0 {
		msg += fmt.Sprintf(" %d Unsupported file type URL(s): [ %s ].", len(r.InvalidFileTypeURLs), strings.Join(r.InvalidFileTypeURLs, ", "))
	}
	return msg
}
