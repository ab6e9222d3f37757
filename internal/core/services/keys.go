package services

// Storage keys for the key-value collaborator.
//
//nolint:gosec // G101: These are key names, not actual credentials.
const (
	keyLastArticle = "article.last"
	keyActiveHost  = "imagehost.active"
	keyGitHubHost  = "imagehost.github"
	keyWeChatHost  = "imagehost.gzh"
)
