package config

// Bytes per MB
const MB = 1024 * 1024

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultMaxFileSize is the largest file the bot will transfer
	DefaultMaxFileSize = 50 * MB

	// DefaultPageSize is the number of entries shown per keyboard page
	DefaultPageSize = 15

	// DefaultMaxTreeDepth is how deep the /start tree render descends
	DefaultMaxTreeDepth = 3

	// DefaultMaxTreeLines caps the total lines of a tree render
	DefaultMaxTreeLines = 300

	// DefaultMsgChunkSize is the transport's message size limit in bytes;
	// longer tree output is split into chunks of this size
	DefaultMsgChunkSize = 3500

	// DefaultMaxHandles bounds each user's handle table; the oldest
	// binding is evicted once the table is full
	DefaultMaxHandles = 4096

	// DefaultTransferTimeout is the overall deadline for one file send,
	// in seconds. Transfers are slow by nature; keep this generous.
	DefaultTransferTimeout = 300
)

// Security modes
const (
	ModeOpen       = "open"
	ModeRestricted = "restricted"
)
