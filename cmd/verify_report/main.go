// verify_report 校验并汇总一个会话数据文件
//
// 用法：
//
//	go run ./cmd/verify_report dataFile_xxxxxxxxxxxxxxxx.txt
package main

import (
	"fmt"
	"os"

	"github.com/decker502/reflex/pkg/game"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: verify_report <dataFile>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	records, err := game.ParseReport(data)
	if err != nil {
		fmt.Printf("Parse error: %v\n", err)
		os.Exit(1)
	}

	counts := map[game.EventKind]int{}
	best := 0.0
	sum := 0.0
	reactions := 0
	for _, rec := range records {
		counts[rec.Kind]++
		if rec.Kind != game.EventClickInsideActive || rec.SinceLastInsideClick == nil {
			continue
		}
		// 首次命中带哨兵值偏移，不计入反应统计
		v := *rec.SinceLastInsideClick
		if v <= 0 || v > 3600 {
			continue
		}
		if reactions == 0 || v < best {
			best = v
		}
		sum += v
		reactions++
	}

	fmt.Printf("Records:        %d\n", len(records))
	fmt.Printf("  %-18s %d\n", game.EventFirstActivation, counts[game.EventFirstActivation])
	fmt.Printf("  %-18s %d\n", game.EventClickInsideActive, counts[game.EventClickInsideActive])
	fmt.Printf("  %-18s %d\n", game.EventClickOutsideActive, counts[game.EventClickOutsideActive])
	if reactions > 0 {
		fmt.Printf("Best reaction:  %.3fs\n", best)
		fmt.Printf("Mean reaction:  %.3fs\n", sum/float64(reactions))
	} else {
		fmt.Println("No timed hits in this session")
	}
}
