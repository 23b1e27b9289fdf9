package lexicon

// Link group names used by the record's link fields.
const (
	ExternalLinks = "external_links"
	SocialLinks   = "social_links"
)

var defaultSkills = []Category{
	{Name: "programming_languages", Phrases: []string{
		"python", "java", "javascript", "js", "c#", "c-sharp", "c++", "cpp", "ruby",
		"go", "golang", "swift", "kotlin", "php", "typescript", "ts", "scala", "rust",
		"perl", "clojure", "bash", "shell", "objective-c", "dart", "r", "matlab",
		"elixir", "haskell", "lua", "erlang", "f#", "fortran", "cobol", "sas",
	}},
	{Name: "frameworks", Phrases: []string{
		"django", "flask", "react", "react.js", "angular", "angular.js", "vue.js", "vue",
		"spring", "spring boot", "asp.net", "ruby on rails", "express.js", "express",
		"node.js", "node", "laravel", "symfony", "ember.js", "backbone.js", "next.js",
		"nuxt.js", "svelte", "pyramid", "fastapi", "bottle", "phoenix", "meteor",
		"gatsby", "blazor", "uikit",
	}},
	{Name: "databases", Phrases: []string{
		"mysql", "postgresql", "postgres", "mongodb", "oracle", "sql server",
		"sqlserver", "ms sql", "ms-sql", "sqlite", "redis", "cassandra", "mariadb",
		"elasticsearch", "db2", "couchdb", "dynamodb", "neo4j", "influxdb", "hbase",
		"firebase", "firestore", "cockroachdb", "memcached", "sql",
	}},
	{Name: "tools", Phrases: []string{
		"git", "docker", "kubernetes", "jenkins", "aws", "azure", "gcp",
		"google cloud platform", "tensorflow", "pytorch", "postman", "visual studio code",
		"vs code", "intellij idea", "intellij", "eclipse", "jira", "slack", "bitbucket",
		"circleci", "travisci", "heroku", "rancher", "openshift", "gitlab", "kibana",
		"airflow", "hadoop", "jupyter", "databricks", "zepl",
	}},
	{Name: "cloud_platforms", Phrases: []string{
		"aws", "azure", "google cloud platform", "gcp", "ibm cloud", "oracle cloud",
		"alibaba cloud", "digitalocean", "linode", "rackspace", "cloudflare",
	}},
	{Name: "devops_tools", Phrases: []string{
		"jenkins", "ansible", "terraform", "terraform cloud", "puppet", "chef", "nagios",
		"prometheus", "prom", "grafana", "splunk", "docker swarm", "saltstack",
		"new relic", "elk stack", "zabbix",
	}},
	{Name: "frontend_technologies", Phrases: []string{
		"html", "css", "bootstrap", "tailwind css", "materialize", "bulma", "foundation",
		"semantic ui", "sass", "less", "stylus",
	}},
}

var defaultLinks = []LinkGroup{
	{Name: ExternalLinks, Platforms: []Platform{
		{Name: "github", Hosts: []string{"github.com"}},
		{Name: "linkedin", Hosts: []string{"linkedin.com"}},
		{Name: "hackerrank", Hosts: []string{"hackerrank.com"}},
		{Name: "leetcode", Hosts: []string{"leetcode.com"}},
		{Name: "codechef", Hosts: []string{"codechef.com"}},
		{Name: "codingninjas", Hosts: []string{"codingninjas.com"}},
	}},
	{Name: SocialLinks, Platforms: []Platform{
		{Name: "instagram", Hosts: []string{"instagram.com"}},
		{Name: "twitter", Hosts: []string{"twitter.com", "x.com"}},
		{Name: "facebook", Hosts: []string{"facebook.com"}},
	}},
}

// DefaultEducationKeywords are the organisation words that mark an ORG
// entity as an educational institution or qualification.
var DefaultEducationKeywords = []string{
	"educational", "university", "college", "institute", "school", "academy",
	"faculty", "polytechnic", "iit", "nit", "mit", "iiit", "bit", "vit", "viit",
	"bachelor", "master", "phd", "degree", "graduate", "pursuing", "btech",
	"b.tech", "m.tech", "mtech", "mba", "ba", "bsc", "ma", "msc", "mca", "mcom",
	"bcom", "bca", "bba",
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	lex, err := Build(defaultSkills, defaultLinks)
	if err != nil {
		panic("lexicon: built-in lexicon is malformed: " + err.Error())
	}
	return lex
}
