// 手动检查一句话命中了哪些标准问题，用于调整 grading.threshold
//
// 用法: go run scripts/match_questions.go "Can I bring my dog?" ["Is there parking?" ...]

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"rental_coach_backend/internal/config"
	"rental_coach_backend/internal/service"
	"rental_coach_backend/pkg/textnorm"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("用法: go run scripts/match_questions.go <utterance> [...]")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	questions := cfg.Grading.Questions
	if len(questions) == 0 {
		questions = config.DefaultQuestions
	}
	matcher := service.NewQuestionMatcher(questions, service.NewEmbeddingScorer(service.NewLexiconEmbedder()), cfg.Grading.Threshold)

	for _, utterance := range os.Args[1:] {
		res, err := matcher.Match(context.Background(), utterance)
		if err != nil {
			log.Fatalf("匹配失败: %v", err)
		}

		fmt.Printf("%q -> %q\n", utterance, textnorm.Normalize(utterance))
		sorted := append([]string(nil), questions...)
		sort.SliceStable(sorted, func(i, j int) bool { return res.Scores[sorted[i]] > res.Scores[sorted[j]] })
		for _, q := range sorted {
			mark := " "
			if res.Scores[q] >= matcher.Threshold() {
				mark = "*"
			}
			fmt.Printf("  %s %.3f  %s\n", mark, res.Scores[q], q)
		}
	}
}
