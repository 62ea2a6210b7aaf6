package game

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ReportHeader 数据文件首行（字段名固定，下游分析脚本按名取列）
const ReportHeader = "timeStamp,event,timeSinceLastClick,timeSinceLastRedClick"

// reportTimeLayout 行内时间戳格式 HH:MM:SS
const reportTimeLayout = "15:04:05"

// SessionIDLength 会话标识长度
const SessionIDLength = 16

// sessionIDAlphabet 62 字符的大小写字母 + 数字
const sessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// MakeSessionID 生成指定长度的随机字母数字标识
// 用于给输出文件起唯一名字
func MakeSessionID(length int, rng *rand.Rand) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(sessionIDAlphabet[rng.Intn(len(sessionIDAlphabet))])
	}
	return b.String()
}

// ReportFileName 根据会话标识拼出输出文件名
func ReportFileName(sessionID string) string {
	return "dataFile_" + sessionID + ".txt"
}

// FormatReport 把事件日志序列化成数据文件内容
//
// 格式：首行 ReportHeader，之后每个事件一行：
//
//	HH:MM:SS,<事件名>,<距上次点击秒数|空>,<距上次命中点击秒数|空>
//
// 间隔保留 3 位小数；字段值只有数字和事件名，不需要转义逗号
func FormatReport(events []InteractionEvent) string {
	var b strings.Builder
	b.WriteString(ReportHeader)
	b.WriteString("\n")

	for _, event := range events {
		b.WriteString(event.Timestamp.Format(reportTimeLayout))
		b.WriteString(",")
		b.WriteString(event.Kind.String())
		b.WriteString(",")
		b.WriteString(formatDelta(event.SinceLastClick))
		b.WriteString(",")
		b.WriteString(formatDelta(event.SinceLastInsideClick))
		b.WriteString("\n")
	}
	return b.String()
}

// formatDelta 格式化可空的间隔字段
func formatDelta(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}

// WriteReport 把事件日志写入 dir/dataFile_<sessionID>.txt
//
// 这是核心唯一的持久化副作用。写入失败时错误必须上抛给调用方
// 报告，不允许静默丢弃日志。
//
// 返回：
//   - string: 写入的完整路径
//   - error: I/O 失败时返回错误
func WriteReport(dir, sessionID string, events []InteractionEvent) (string, error) {
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, ReportFileName(sessionID))
	if err := os.WriteFile(path, []byte(FormatReport(events)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return path, nil
}

// ReportRecord 数据文件中的一行解析结果
type ReportRecord struct {
	Timestamp            string // HH:MM:SS 原文
	Kind                 EventKind
	SinceLastClick       *float64
	SinceLastInsideClick *float64
}

// ParseReport 解析数据文件内容
//
// 用于 cmd/verify_report 工具和序列化回归测试。
// 首行必须是 ReportHeader，其余每行 4 个逗号分隔字段。
func ParseReport(data []byte) ([]ReportRecord, error) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 || lines[0] != ReportHeader {
		return nil, fmt.Errorf("missing or malformed report header")
	}

	records := make([]ReportRecord, 0, len(lines)-1)
	for i, line := range lines[1:] {
		lineNo := i + 2
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 fields, got %d", lineNo, len(fields))
		}

		if _, err := time.Parse(reportTimeLayout, fields[0]); err != nil {
			return nil, fmt.Errorf("line %d: bad timestamp %q: %w", lineNo, fields[0], err)
		}

		kind, err := ParseEventKind(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		record := ReportRecord{
			Timestamp: fields[0],
			Kind:      kind,
		}

		if record.SinceLastClick, err = parseDelta(fields[2]); err != nil {
			return nil, fmt.Errorf("line %d: bad timeSinceLastClick: %w", lineNo, err)
		}
		if record.SinceLastInsideClick, err = parseDelta(fields[3]); err != nil {
			return nil, fmt.Errorf("line %d: bad timeSinceLastRedClick: %w", lineNo, err)
		}

		records = append(records, record)
	}
	return records, nil
}

// parseDelta 解析可空的间隔字段，空字符串返回 nil
func parseDelta(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, fmt.Errorf("negative delta %v", v)
	}
	return &v, nil
}
