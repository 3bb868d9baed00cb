package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/filterize/credengine/internal/model"
)

// Renderer turns engine results into user-facing output.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes a result as indented JSON to the given path, or to
// stdout when path is "-" or empty.
func (r *Renderer) RenderJSON(result interface{}, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderAnalysisMarkdown writes a markdown report for a credibility
// result.
func (r *Renderer) RenderAnalysisMarkdown(result *model.CredibilityResult, path string) error {
	var b strings.Builder

	b.WriteString("# Credibility Analysis\n\n")
	fmt.Fprintf(&b, "- **AI probability**: %.0f%%\n", result.Probability*100)
	fmt.Fprintf(&b, "- **Confidence**: %.0f%%\n", result.Confidence*100)
	if result.ProviderUsed != "" {
		fmt.Fprintf(&b, "- **Provider**: %s\n", result.ProviderUsed)
	} else {
		b.WriteString("- **Provider**: local detectors only\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", result.Explanation)

	if len(result.MethodsUsed) > 0 {
		b.WriteString("\n## Methods\n\n")
		for _, m := range result.MethodsUsed {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}
	if len(result.Flags) > 0 {
		b.WriteString("\n## Flags\n\n")
		for _, f := range result.Flags {
			fmt.Fprintf(&b, "- `%s`\n", f)
		}
	}
	r.footer(&b)

	return writeOut(b.String(), path)
}

// RenderFactCheckMarkdown writes a markdown report for a fact-check
// result.
func (r *Renderer) RenderFactCheckMarkdown(result *model.FactCheckResult, path string) error {
	var b strings.Builder

	b.WriteString("# Fact Check\n\n")
	fmt.Fprintf(&b, "- **Score**: %d/100\n", result.Score)
	fmt.Fprintf(&b, "- **Verified claims**: %d\n", len(result.VerifiedClaims))
	fmt.Fprintf(&b, "- **Disputed claims**: %d\n", len(result.DisputedClaims))

	writeClaims := func(title string, claims []model.VerificationResult) {
		if len(claims) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		for _, c := range claims {
			verdict := "undetermined"
			if c.Verified != nil {
				if *c.Verified {
					verdict = "verified"
				} else {
					verdict = "disputed"
				}
			}
			fmt.Fprintf(&b, "- %q — %s (%.0f%% confidence)\n", c.Claim.Text, verdict, c.Confidence*100)
			for _, fact := range c.SupportingFacts {
				fmt.Fprintf(&b, "  - %s\n", fact)
			}
		}
	}
	writeClaims("Verified Claims", result.VerifiedClaims)
	writeClaims("Disputed Claims", result.DisputedClaims)

	if len(result.RelatedArticles) > 0 {
		b.WriteString("\n## Related Articles\n\n")
		for _, a := range result.RelatedArticles {
			fmt.Fprintf(&b, "- [%s](%s) — %s (relevance %d)\n", a.Title, a.URL, a.Source, a.RelevanceScore)
		}
	}
	r.footer(&b)

	return writeOut(b.String(), path)
}

// Summary prints a one-screen overview to w.
func (r *Renderer) Summary(w io.Writer, result *model.CredibilityResult) {
	fmt.Fprintf(w, "AI probability: %.0f%%  confidence: %.0f%%\n", result.Probability*100, result.Confidence*100)
	fmt.Fprintln(w, result.Explanation)
	if result.ProviderUsed != "" {
		fmt.Fprintf(w, "provider: %s\n", result.ProviderUsed)
	}
	if len(result.Flags) > 0 {
		fmt.Fprintf(w, "flags: %s\n", strings.Join(result.Flags, ", "))
	}
}

// FactCheckSummary prints a one-screen overview of a fact-check result.
func (r *Renderer) FactCheckSummary(w io.Writer, result *model.FactCheckResult) {
	fmt.Fprintf(w, "fact-check score: %d/100 (%d verified, %d disputed)\n",
		result.Score, len(result.VerifiedClaims), len(result.DisputedClaims))
	for _, a := range result.RelatedArticles {
		fmt.Fprintf(w, "  related: %s (%s)\n", a.Title, a.Source)
	}
}

func (r *Renderer) footer(b *strings.Builder) {
	if r.includeFooter {
		b.WriteString("\n---\nGenerated by credengine. Scores describe signal agreement, not ground truth.\n")
	}
}

func writeOut(content, path string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
