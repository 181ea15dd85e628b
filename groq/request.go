package groq

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"judol-guard/config"
)

// EXTRACTION_INSTRUCTION is the system prompt describing the word-extraction
// task, with worked examples of obfuscated-brand detection.
const EXTRACTION_INSTRUCTION = `You are an assistant to help reduce illegal online-gamble promotion in youtube comments.
You will be provided an array of youtube comments inside <comment> tag.
You need to extract exact word from given comments that are highly possible to be the online-gambling name.
Do not hallucinate, only response with text within provided comments.

Examples:

<comment>
Buat yang belum coba, kalian harus coba sekarang juga di 𝘼𝘌𝐑𝘖𝟴𝟪!
Gacir banget tiap main di АHMA𝘿𝑇O𝙏𝐎,nggak pernah bikin kecewa!
Nggak salah pilih main di 𝐴𝐺U𝐒𝑇O𝘛О,rezekinya ngalir terus. Top banget!
Gak ada yang tau kapan rezeki datang, tapi di A𝐆𝑈𝑆T𝐎𝘛О,semuanya bisa terjadi!
Hasil gacir bikin aku makin puas main di 𝐀𝙀𝙍𝙊𝟴𝟾,makasih banyak!
АGU𝑆𝑇𝑂𝑇Omenawarkan berbagai fitur yang menarik bagi sebagian pemain.
Main bentar langsung gacir. Rezeki nggak bisa diprediksi di D𝑂𝙍A7𝟩!
𝐦𝐚𝐢𝐧 𝐝𝐢 sini 𝐠𝐚𝐜𝐨𝐫 𝐡𝐚𝐛𝐢𝐬 𝐛𝐚𝐫𝐮 𝐬𝐚𝐣𝐚 𝐦𝐚𝐢𝐧 𝐬𝐮𝐝𝐚𝐡 𝐝𝐢 𝐤𝐚𝐬𝐢 𝐦𝐚𝐱𝐰𝐢𝐧 𝐢 𝐥𝐨𝐯𝐞 𝐲𝐨𝐮 sawer4d 𝐞𝐦𝐦𝐦𝐦𝐮𝐚𝐚𝐚𝐡𝐡.
<comment/>

𝘼𝘌𝐑𝘖𝟴𝟪,АHMA𝘿𝑇O𝙏𝐎,𝐴𝐺U𝐒𝑇O𝘛О,A𝐆𝑈𝑆T𝐎𝘛О,𝐀𝙀𝙍𝙊𝟴𝟾,АGU𝑆𝑇𝑂𝑇O,D𝑂𝙍A7𝟩,sawer4d`

// BatchRequest is one line of the uploaded batch input file.
type BatchRequest struct {
	CustomID string           `json:"custom_id"`
	Method   string           `json:"method"`
	URL      string           `json:"url"`
	Body     BatchRequestBody `json:"body"`
}

type BatchRequestBody struct {
	Model               string    `json:"model"`
	Temperature         float64   `json:"temperature"`
	MaxCompletionTokens int       `json:"max_completion_tokens"`
	Messages            []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewExtractionRequest builds the batch request for one chunk of comment
// texts, with a fresh correlation id.
func NewExtractionRequest(cfg config.GroqConfig, texts []string) BatchRequest {
	return BatchRequest{
		CustomID: uuid.NewString(),
		Method:   "POST",
		URL:      "/v1/chat/completions",
		Body: BatchRequestBody{
			Model:               cfg.Model,
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: cfg.MaxCompletionTokens,
			Messages: []Message{
				{Role: "system", Content: EXTRACTION_INSTRUCTION},
				{Role: "user", Content: "<comment>" + strings.Join(texts, "\n") + "</comment>"},
			},
		},
	}
}

// batchOutputLine mirrors the nested path to the model's answer inside one
// output file line.
type batchOutputLine struct {
	Response struct {
		Body struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		} `json:"body"`
	} `json:"response"`
}

// ExtractWords pulls the comma-separated flagged words out of one output
// line (response.body.choices[0].message.content, split on ", ").
func ExtractWords(record json.RawMessage) ([]string, error) {
	var line batchOutputLine
	if err := json.Unmarshal(record, &line); err != nil {
		return nil, fmt.Errorf("groq: unparseable output line: %w", err)
	}
	if len(line.Response.Body.Choices) == 0 {
		return nil, fmt.Errorf("groq: output line has no choices")
	}
	content := line.Response.Body.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("groq: output line has empty content")
	}
	return strings.Split(content, ", "), nil
}
