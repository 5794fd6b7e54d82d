package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// QuestionBankService stores interview questions as vectors so similar
// questions can be looked up later.
type QuestionBankService interface {
	InitCollection(ctx context.Context) error
	Upsert(ctx context.Context, entry QuestionEntry, embedding []float32) error
	Search(ctx context.Context, queryEmbedding []float32, module ModuleType, limit int) ([]QuestionMatch, error)
}

type QuestionEntry struct {
	Question   string
	ModuleType ModuleType
	Source     string
}

type QuestionMatch struct {
	Question   string     `json:"question"`
	ModuleType ModuleType `json:"moduleType"`
	Source     string     `json:"source"`
	Score      float32    `json:"score"`
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QuestionBankService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
	}, nil
}

// InitCollection implements QuestionBankService.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Question bank collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// Upsert implements QuestionBankService. Point IDs derive from the question
// text, so indexing the same question twice overwrites one point.
func (q *qdrantService) Upsert(ctx context.Context, entry QuestionEntry, embedding []float32) error {
	pointID := questionPointID(entry.ModuleType, entry.Question)

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(pointID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"question":    entry.Question,
			"module_type": string(entry.ModuleType),
			"source":      entry.Source,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// Search implements QuestionBankService. An empty module searches all modules.
func (q *qdrantService) Search(ctx context.Context, queryEmbedding []float32, module ModuleType, limit int) ([]QuestionMatch, error) {
	var filter *qdrant.Filter
	if module != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("module_type", string(module)),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]QuestionMatch, 0, len(points))
	for _, point := range points {
		payload := point.Payload
		matches = append(matches, QuestionMatch{
			Question:   payloadString(payload, "question"),
			ModuleType: ModuleType(payloadString(payload, "module_type")),
			Source:     payloadString(payload, "source"),
			Score:      point.Score,
		})
	}

	return matches, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
		return s.StringValue
	}
	return ""
}

var questionNamespace = uuid.MustParse("5d7c0c9e-8f3e-4a5b-9a44-1f4b1c6f2e10")

func questionPointID(module ModuleType, question string) uuid.UUID {
	return uuid.NewSHA1(questionNamespace, []byte(string(module)+"\x00"+question))
}
