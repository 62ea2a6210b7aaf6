// check_embed 校验随仓库发布的训练配置文件
//
// 从仓库根目录运行：
//
//	go run ./cmd/check_embed
package main

import (
	"crypto/md5"
	"fmt"
	"os"

	"github.com/decker502/reflex/pkg/config"
)

func main() {
	data, err := os.ReadFile("assets/config/trainer.yaml")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	hash := md5.Sum(data)
	fmt.Printf("trainer.yaml MD5: %x\n", hash)
	fmt.Printf("File size: %d bytes\n", len(data))

	cfg, err := config.ParseTrainerConfig(data)
	if err != nil {
		fmt.Printf("Parse error: %v\n", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		return
	}
	fmt.Printf("Window:  %dx%d\n", cfg.Window.Width, cfg.Window.Height)
	fmt.Printf("Targets: %d (radius %.1f, interval %.1fs)\n", cfg.TargetCount, cfg.TargetRadius, cfg.RetargetInterval)
}
