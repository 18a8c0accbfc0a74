package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
)

// GenerationService talks to an OpenAI-style chat completions endpoint and
// turns whatever comes back into a GenerationResult. The external service is
// asked for JSON but does not reliably honor the schema, so everything past
// the HTTP call is defensive.
type GenerationService struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewGenerationService() *GenerationService {
	baseURL := os.Getenv("GENERATION_API_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1/chat/completions"
	}
	model := os.Getenv("GENERATION_MODEL")
	if model == "" {
		model = "gpt-4-turbo"
	}
	timeout := 30 * time.Second
	if v := os.Getenv("GENERATION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		}
	}
	return &GenerationService{
		client:  &http.Client{Timeout: timeout},
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		model:   model,
	}
}

// ResultKind says how much the response had to be repaired.
type ResultKind int

const (
	KindWellFormed ResultKind = iota // had the requested {recipes: [...]} shape
	KindRecovered                    // valid JSON, shape repaired (see Recovery)
	KindParseFailed                  // not JSON at all, Raw holds the body
	KindEmpty                        // JSON but nothing recipe-like in it
)

// Recovery paths, in the priority order they are tried.
const (
	RecoveryAliasKey   = "alias-key"   // recipe/Recipe/recipeList/results rewrapped
	RecoveryObjectList = "object-list" // first non-empty list of objects rewrapped
	RecoveryWrapped    = "wrapped"     // whole object wrapped as a single recipe
)

type AllergyFlags struct {
	ContainsVegetarian bool `json:"containsVegetarian"`
	ContainsGluten     bool `json:"containsGluten"`
	ContainsNuts       bool `json:"containsNuts"`
	ContainsMeat       bool `json:"containsMeat"`
}

type GeneratedRecipe struct {
	RecipeName         string       `json:"recipeName"`
	Description        string       `json:"description"`
	Steps              []string     `json:"steps"`
	Ingredients        string       `json:"ingredients"`
	MissingIngredients string       `json:"missingIngredients"`
	PrepTime           string       `json:"prepTime"`
	AllergyFlags       AllergyFlags `json:"allergyFlags"`
}

type GenerationResult struct {
	Kind     ResultKind
	Recovery string // set when Kind == KindRecovered
	Recipes  []GeneratedRecipe
	Raw      string                // set when Kind == KindParseFailed
	Err      *GenerationParseError // set when Kind == KindParseFailed
}

// chat completions wire types
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate runs the prompt against the service and classifies the outcome.
// Network timeouts come back as ErrGenerationTimeout so callers can report a
// retryable failure; the service itself never retries.
func (s *GenerationService) Generate(prompt RecipePrompt) (*GenerationResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", s.baseURL, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	reqID := uuid.NewString()
	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			log.Printf("generation %s: timed out after %s", reqID, s.client.Timeout)
			return nil, ErrGenerationTimeout
		}
		return nil, fmt.Errorf("generation request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generation response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// surface the exact upstream error body
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("generation api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("generation api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out chatResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return nil, fmt.Errorf("decode generation envelope error: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("generation returned no choices")
	}

	result := ClassifyGenerationOutput(out.Choices[0].Message.Content)
	if result.Kind == KindParseFailed {
		log.Printf("generation %s: %v (%d bytes kept for diagnostics)", reqID, result.Err, len(result.Raw))
	}
	return result, nil
}

// ClassifyGenerationOutput parses the model's text and repairs its shape.
// The recovery ladder mirrors how the service actually misbehaves and its
// priority order is part of the contract:
//
//  1. top-level "recipes" list: use as-is
//  2. a known alias key (recipe, Recipe, recipeList, results) holding a
//     list: rewrap under recipes
//  3. any top-level key holding a non-empty list of objects: rewrap it
//  4. otherwise wrap the whole object as a single recipe, or give up with
//     an empty list when the value is not an object
func ClassifyGenerationOutput(content string) *GenerationResult {
	var parsed interface{}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return &GenerationResult{
			Kind: KindParseFailed,
			Raw:  content,
			Err:  &GenerationParseError{Raw: content, Err: err},
		}
	}

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return &GenerationResult{Kind: KindEmpty, Recipes: []GeneratedRecipe{}}
	}

	if list, ok := obj["recipes"].([]interface{}); ok {
		return &GenerationResult{Kind: KindWellFormed, Recipes: decodeRecipes(list)}
	}

	for _, alias := range []string{"recipe", "Recipe", "recipeList", "results"} {
		if list, ok := obj[alias].([]interface{}); ok {
			return &GenerationResult{Kind: KindRecovered, Recovery: RecoveryAliasKey, Recipes: decodeRecipes(list)}
		}
	}

	// deterministic scan order over whatever keys the model invented
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		list, ok := obj[k].([]interface{})
		if !ok || len(list) == 0 {
			continue
		}
		if _, ok := list[0].(map[string]interface{}); ok {
			return &GenerationResult{Kind: KindRecovered, Recovery: RecoveryObjectList, Recipes: decodeRecipes(list)}
		}
	}

	return &GenerationResult{
		Kind:     KindRecovered,
		Recovery: RecoveryWrapped,
		Recipes:  decodeRecipes([]interface{}{obj}),
	}
}

// decodeRecipes converts loosely typed recipe objects into GeneratedRecipe.
// Field extraction is manual so an object with odd field types still comes
// through instead of being dropped; only non-objects are skipped.
func decodeRecipes(list []interface{}) []GeneratedRecipe {
	recipes := make([]GeneratedRecipe, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		r := GeneratedRecipe{
			RecipeName:         asString(m["recipeName"]),
			Description:        asString(m["description"]),
			Steps:              asStringSlice(m["steps"]),
			Ingredients:        asString(m["ingredients"]),
			MissingIngredients: asString(m["missingIngredients"]),
			PrepTime:           asString(m["prepTime"]),
		}
		if flags, ok := m["allergyFlags"].(map[string]interface{}); ok {
			r.AllergyFlags = AllergyFlags{
				ContainsVegetarian: asBool(flags["containsVegetarian"]),
				ContainsGluten:     asBool(flags["containsGluten"]),
				ContainsNuts:       asBool(flags["containsNuts"]),
				ContainsMeat:       asBool(flags["containsMeat"]),
			}
		}
		recipes = append(recipes, r)
	}
	return recipes
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func asStringSlice(v interface{}) []string {
	switch vv := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		// some responses flatten steps into one string
		if vv == "" {
			return []string{}
		}
		return []string{vv}
	default:
		return []string{}
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
