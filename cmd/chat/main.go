// Command chat runs the assistant as a local terminal conversation. It
// drives the dialogue engine directly, no server or Redis required.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/bbqjunction/tabletalk/config"
	"github.com/bbqjunction/tabletalk/dialogue"
	"github.com/bbqjunction/tabletalk/knowledge"
	"github.com/bbqjunction/tabletalk/oracle"
	"github.com/bbqjunction/tabletalk/summary"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	kb := knowledge.NewStore()
	registry, err := dialogue.NewRegistry(kb)
	if err != nil {
		log.Fatalf("Failed to load conversation states: %v", err)
	}

	engine := dialogue.NewEngine(registry, kb)
	switch cfg.OracleProvider {
	case config.OracleOpenAI:
		engine.SetOracle(oracle.NewOpenAI(cfg.OpenAIAPIKey, ""), cfg.OracleTimeout, cfg.OracleThreshold)
	case config.OracleGemini:
		g, err := oracle.NewGemini(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("⚠️ Gemini oracle unavailable, continuing rule-based: %v", err)
		} else {
			engine.SetOracle(g, cfg.OracleTimeout, cfg.OracleThreshold)
		}
	}

	sess := dialogue.NewSession("local")
	fmt.Println("Type your replies; /quit ends the conversation.")
	fmt.Println()
	fmt.Println("assistant:", engine.Greeting(sess))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "/quit" || line == "/exit" {
			break
		}
		fmt.Println("assistant:", engine.Advance(context.Background(), sess, line))
	}

	rec := summary.Summarize(sess)
	out, err := sonic.MarshalIndent(rec, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode summary: %v", err)
	}
	fmt.Println()
	fmt.Println(string(out))
}
