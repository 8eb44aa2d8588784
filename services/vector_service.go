package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/philippgille/chromem-go"
	"github.com/sashabaranov/go-openai"
)

const (
	packageCollectionName = "travomine-packages"

	defaultEmbeddingModel = "text-embedding-3-small"
)

// Embedder computes a semantic embedding for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type openAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder builds an embedder over the OpenAI embeddings API.
// baseURL and model are optional overrides.
func NewOpenAIEmbedder(apiKey, baseURL, model string) (Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for embeddings")
	}

	if model == "" {
		model = defaultEmbeddingModel
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &openAIEmbedder{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (e *openAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("embedding API error: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding API returned no vectors")
	}

	return resp.Data[0].Embedding, nil
}

// PackageHit is one retrieved package description.
type PackageHit struct {
	ID         string
	Text       string
	Similarity float32
}

// PackageIndex stores package-template descriptions and serves semantic
// lookups for the drafting pipeline.
type PackageIndex interface {
	Upsert(ctx context.Context, id, text string) error
	Search(ctx context.Context, query string, topK int) ([]PackageHit, error)
}

type chromemPackageIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   Embedder
}

// NewPackageIndex opens (or creates) the persistent vector index under
// dataDir.
func NewPackageIndex(dataDir string, embedder Embedder) (PackageIndex, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := chromem.NewPersistentDB(filepath.Join(dataDir, "chromem.db"), false)
	if err != nil {
		return nil, fmt.Errorf("failed to open chromem DB: %w", err)
	}

	collection, err := db.GetOrCreateCollection(packageCollectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create collection: %w", err)
	}

	return &chromemPackageIndex{
		db:         db,
		collection: collection,
		embedder:   embedder,
	}, nil
}

func (ix *chromemPackageIndex) Upsert(ctx context.Context, id, text string) error {
	embedding, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return &RetrievalUnavailableError{Cause: err}
	}

	doc := chromem.Document{
		ID:        id,
		Embedding: embedding,
		Metadata:  map[string]string{"text": text},
		Content:   text,
	}

	if err := ix.collection.AddDocuments(ctx, []chromem.Document{doc}, 1); err != nil {
		return &RetrievalUnavailableError{Cause: err}
	}
	return nil
}

func (ix *chromemPackageIndex) Search(ctx context.Context, query string, topK int) ([]PackageHit, error) {
	if topK <= 0 {
		topK = 2
	}
	// chromem rejects topK greater than the collection size.
	if n := ix.collection.Count(); n < topK {
		if n == 0 {
			return nil, nil
		}
		topK = n
	}

	embedding, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &RetrievalUnavailableError{Cause: err}
	}

	results, err := ix.collection.QueryEmbedding(ctx, embedding, topK, nil, nil)
	if err != nil {
		return nil, &RetrievalUnavailableError{Cause: err}
	}

	hits := make([]PackageHit, 0, len(results))
	for _, res := range results {
		hits = append(hits, PackageHit{
			ID:         res.ID,
			Text:       res.Content,
			Similarity: res.Similarity,
		})
	}
	return hits, nil
}
