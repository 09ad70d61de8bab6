package plot

import (
	"bytes"
	"net/url"
	"strconv"
	"strings"
	"text/template"

	"github.com/petasbytes/repostats-agent/internal/fsops"
	"github.com/petasbytes/repostats-agent/tools"
)

// DefaultRepo titles the chart when the stats carry no parsable repository URL.
const DefaultRepo = "camel-ai/camel"

var scriptTemplate = template.Must(template.New("plot").Funcs(template.FuncMap{
	"py": strconv.Quote,
}).Parse(`
import matplotlib.pyplot as plt
data = {"stars": {{.Stars}}, "forks": {{.Forks}}}
plt.bar(["Stars", "Forks"], [data["stars"], data["forks"]], color=["skyblue", "lightgreen"])
plt.title({{py .Title}})
plt.ylabel("Count")
plt.savefig({{py .Image}})
plt.show()
`))

// ScriptWriter renders the plotting script and writes it under Root.
type ScriptWriter struct {
	Root  *fsops.Root
	Path  string // relative script path, e.g. plot_github_stats.py
	Image string // image file the script saves, relative to its working dir
}

// Title returns the chart title for s.
func Title(s tools.Stats) string {
	return "GitHub Stats of " + RepoSlug(s.Repo)
}

// RepoSlug extracts owner/name from a GitHub URL, falling back to DefaultRepo.
func RepoSlug(repoURL string) string {
	u, err := url.Parse(strings.TrimSpace(repoURL))
	if err != nil || !strings.Contains(u.Host, "github.com") {
		return DefaultRepo
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return DefaultRepo
	}
	return parts[0] + "/" + strings.TrimSuffix(parts[1], ".git")
}

// Render returns the script source for s.
func (w *ScriptWriter) Render(s tools.Stats) ([]byte, error) {
	var buf bytes.Buffer
	err := scriptTemplate.Execute(&buf, map[string]any{
		"Stars": s.Stars,
		"Forks": s.Forks,
		"Title": Title(s),
		"Image": w.Image,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the script and overwrites Path. It returns the absolute path.
func (w *ScriptWriter) Write(s tools.Stats) (string, error) {
	src, err := w.Render(s)
	if err != nil {
		return "", err
	}
	return w.Root.WriteFile(w.Path, src)
}
