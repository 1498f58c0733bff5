package limits

// defaultLimits is the baked-in limits table. Values are the vendor-published
// numbers at the time of writing; deployments that track newer models supply
// an override file instead of editing this table.
//
// NewRegistry deep-copies this map so the base data is never mutated by
// runtime upserts.
var defaultLimits = map[Provider]map[string]ModelLimits{
	OpenAI: {
		"gpt-4o":        {Context: 128000, MaxOutput: 16384},
		"gpt-4o-mini":   {Context: 128000, MaxOutput: 16384},
		"gpt-4-turbo":   {Context: 128000, MaxOutput: 4096},
		"gpt-4.1":       {Context: 1047576, MaxOutput: 32768, InputMax: 1000000},
		"gpt-4.1-mini":  {Context: 1047576, MaxOutput: 32768, InputMax: 1000000},
		"gpt-3.5-turbo": {Context: 16385, MaxOutput: 4096},
		"o1":            {Context: 200000, MaxOutput: 100000, ReserveOutputPct: 0.10},
		"o1-mini":       {Context: 128000, MaxOutput: 65536, ReserveOutputPct: 0.10},
		"o3-mini":       {Context: 200000, MaxOutput: 100000, ReserveOutputPct: 0.10},
	},
	Anthropic: {
		"claude-opus-4":              {Context: 200000, MaxOutput: 32000, ReserveOutputPct: 0.10},
		"claude-sonnet-4":            {Context: 200000, MaxOutput: 64000, ReserveOutputPct: 0.10},
		"claude-3-7-sonnet":          {Context: 200000, MaxOutput: 64000, ReserveOutputPct: 0.10},
		"claude-3-5-sonnet-20241022": {Context: 200000, MaxOutput: 8192},
		"claude-3-5-haiku-20241022":  {Context: 200000, MaxOutput: 8192},
		"claude-3-opus-20240229":     {Context: 200000, MaxOutput: 4096},
		"claude-3-haiku-20240307":    {Context: 200000, MaxOutput: 4096},
	},
	Google: {
		"gemini-2.5-pro":   {Context: 1048576, MaxOutput: 65536, InputMax: 1000000},
		"gemini-2.5-flash": {Context: 1048576, MaxOutput: 65536, InputMax: 1000000},
		"gemini-2.0-flash": {Context: 1048576, MaxOutput: 8192},
		"gemini-1.5-pro":   {Context: 2097152, MaxOutput: 8192},
		"gemini-1.5-flash": {Context: 1048576, MaxOutput: 8192},
	},
	Ollama: {
		"llama3.1":    {Context: 131072, MaxOutput: 4096},
		"llama3.2":    {Context: 131072, MaxOutput: 4096},
		"mistral":     {Context: 32768, MaxOutput: 4096},
		"qwen2.5":     {Context: 32768, MaxOutput: 4096},
		"deepseek-r1": {Context: 131072, MaxOutput: 8192, ReserveOutputPct: 0.10},
	},
}

// legacyMaxTokens is the total-fallback output cap per provider, used when a
// (provider, model) pair is unregistered but the caller must still get some
// answer. Deliberately small: the safe direction for an unknown model is a
// short completion, not a rejected request.
var legacyMaxTokens = map[Provider]int{
	OpenAI:    4096,
	Anthropic: 4096,
	Google:    8192,
	Ollama:    2048,
}

// legacyDefaultMaxTokens is used when even the provider is unknown.
const legacyDefaultMaxTokens = 2048
