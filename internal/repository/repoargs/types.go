package repoargs

type RepositoryName string

const (
	AffiliateRepoName  RepositoryName = "affiliate"
	CommissionRepoName RepositoryName = "commission"
)
