package util

const (
	DefaultListingID = 1

	SessionCookie = "rc_session"
	SessionQuery  = "session"
	SessionKey    = "session_id"
)

const (
	ListingSourceMemory = "memory"
	ListingSourceMySQL  = "mysql"
)

const (
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderLexicon = "lexicon"
)
