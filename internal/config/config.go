package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"corpus_dashboard/internal/analysis"
)

type Config struct {
	CorpusDir        string
	CorpusGlob       string
	TitlePrefix      string
	Workspace        string
	Workers          int
	SentimentChunk   int
	BagOfWordsTopK   int
	NGramTopK        int
	SentimentLexicon string
	Concepts         string
	DBEnabled        bool
	ServeAddr        string
	CORSOrigins      []string
	TraceProgress    bool
}

// Load reads .env when present, then the environment. Unset or malformed
// values fall back to defaults.
func Load() Config {
	_ = godotenv.Load(".env")
	return FromEnv()
}

func FromEnv() Config {
	def := analysis.DefaultOptions()
	return Config{
		CorpusDir:        getenv("CORPUS_DIR", "."),
		CorpusGlob:       getenv("CORPUS_GLOB", "*.txt"),
		TitlePrefix:      os.Getenv("CORPUS_TITLE_PREFIX"),
		Workspace:        getenv("CORPUS_WORKSPACE", ""),
		Workers:          getenvInt("CORPUS_WORKERS", 0),
		SentimentChunk:   getenvInt("CORPUS_SENTIMENT_CHUNK", def.SentimentChunkRunes),
		BagOfWordsTopK:   getenvInt("CORPUS_BOW_TOP_K", def.BagOfWordsTopK),
		NGramTopK:        getenvInt("CORPUS_NGRAM_TOP_K", def.NGramTopK),
		SentimentLexicon: getenv("CORPUS_SENTIMENT_LEXICON", ""),
		Concepts:         getenv("CORPUS_CONCEPTS", ""),
		DBEnabled:        getenvBool("CORPUS_DB_ENABLED", true),
		ServeAddr:        getenv("CORPUS_SERVE_ADDR", ":8080"),
		CORSOrigins:      getenvList("CORPUS_CORS_ORIGINS", []string{"*"}),
		TraceProgress:    getenvBool("CORPUS_TRACE_PROGRESS", false),
	}
}

func (c Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		BagOfWordsTopK:      c.BagOfWordsTopK,
		NGramTopK:           c.NGramTopK,
		SentimentChunkRunes: c.SentimentChunk,
	}
}

func getenv(name, fallback string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getenvBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	return raw == "1" || raw == "true" || raw == "yes" || raw == "on"
}

func getenvList(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
