package services

import "github.com/ochairo/openssf-assess/internal/domain/entities"

// Default traversal bounds
const (
	DefaultMaxDepth = 12
	DefaultMaxFiles = 50000
)

// DefaultCatalog returns the built-in check set.
// Check order is the tie-break order for recommendations of equal severity.
func DefaultCatalog() entities.Catalog {
	return entities.Catalog{
		Languages:     defaultLanguages(),
		Checks:        defaultChecks(),
		CISystems:     defaultCISystems(),
		WorkflowGlobs: []string{".github/workflows/*.yml", ".github/workflows/*.yaml"},
		IgnoreDirs: []string{
			".git", "node_modules", "vendor", "__pycache__", ".tox", ".venv", "venv",
			"dist", "build", ".eggs", "target", ".idea", ".gradle",
		},
		Limits: entities.Limits{MaxDepth: DefaultMaxDepth, MaxFiles: DefaultMaxFiles},
		Weights: map[entities.Severity]int{
			entities.SeverityCritical: 3,
			entities.SeverityHigh:     2,
			entities.SeverityMedium:   1,
			entities.SeverityLow:      1,
		},
	}
}

func defaultLanguages() []entities.LanguageMarker {
	return []entities.LanguageMarker{
		{
			Name:           "python",
			Markers:        []string{"pyproject.toml", "requirements.txt", "setup.py", "Pipfile", "setup.cfg", "*.py"},
			PackageManager: "pip/poetry/pipenv",
			AuditTool:      "pip-audit",
			AuditRationale: "pip-audit scans Python dependencies for known vulnerabilities.",
		},
		{
			Name:           "node",
			Markers:        []string{"package.json", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "*.js", "*.mjs", "*.cjs"},
			PackageManager: "npm/yarn/pnpm",
			AuditTool:      "npm audit",
			AuditRationale: "npm audit scans Node.js dependencies for known vulnerabilities.",
		},
		{
			Name:           "typescript",
			Markers:        []string{"tsconfig.json", "*.ts", "*.tsx"},
			PackageManager: "npm/yarn/pnpm",
		},
		{
			Name:           "go",
			Markers:        []string{"go.mod", "go.sum", "*.go"},
			PackageManager: "go modules",
			AuditTool:      "govulncheck",
			AuditRationale: "govulncheck checks Go dependencies against the Go vulnerability database.",
		},
		{
			Name:           "rust",
			Markers:        []string{"Cargo.toml", "Cargo.lock", "*.rs"},
			PackageManager: "cargo",
			AuditTool:      "cargo audit",
			AuditRationale: "cargo audit checks Rust crate dependencies for known vulnerabilities.",
		},
		{
			Name:           "java",
			Markers:        []string{"pom.xml", "build.gradle", "build.gradle.kts", "*.java"},
			PackageManager: "maven/gradle",
			AuditTool:      "OWASP Dependency-Check",
			AuditRationale: "OWASP Dependency-Check scans Java dependencies for known CVEs.",
		},
		{
			Name:           "kotlin",
			Markers:        []string{"build.gradle.kts", "*.kt", "*.kts"},
			PackageManager: "gradle",
		},
		{
			Name:           "ruby",
			Markers:        []string{"Gemfile", "Gemfile.lock", "*.gemspec", "*.rb"},
			PackageManager: "bundler",
			AuditTool:      "bundler-audit",
			AuditRationale: "bundler-audit scans Ruby gem dependencies for known vulnerabilities.",
		},
		{
			Name:           "php",
			Markers:        []string{"composer.json", "composer.lock", "*.php"},
			PackageManager: "composer",
			AuditTool:      "composer audit",
			AuditRationale: "composer audit scans PHP dependencies for known vulnerabilities.",
		},
		{
			Name:           "dotnet",
			Markers:        []string{"*.csproj", "*.fsproj", "*.vbproj", "*.sln", "*.cs", "*.fs", "*.vb"},
			PackageManager: "nuget",
			AuditTool:      "dotnet list package --vulnerable",
			AuditRationale: "NuGet audit scans .NET dependencies for known vulnerabilities.",
		},
		{
			Name:           "swift",
			Markers:        []string{"Package.swift", "*.swift"},
			PackageManager: "swift package manager",
		},
		{
			Name:           "elixir",
			Markers:        []string{"mix.exs", "*.ex", "*.exs"},
			PackageManager: "hex",
		},
	}
}

func defaultChecks() []entities.ArtifactCheck {
	return []entities.ArtifactCheck{
		{
			Name:      "security-policy",
			Category:  "documentation",
			Paths:     []string{"SECURITY.md", ".github/SECURITY.md", "docs/SECURITY.md"},
			Severity:  entities.SeverityCritical,
			Rationale: "Required for responsible vulnerability disclosure. Users and researchers need to know how to report security issues.",
			Reference: "templates/SECURITY.md",
		},
		{
			Name:     "dependency-updates",
			Category: "dependencies",
			Paths: []string{
				".github/dependabot.yml", ".github/dependabot.yaml",
				"renovate.json", ".renovaterc", ".renovaterc.json", ".github/renovate.json",
			},
			Severity:  entities.SeverityHigh,
			Rationale: "Automated dependency updates (Dependabot or Renovate) help patch vulnerabilities quickly.",
			Reference: "templates/dependabot.yml",
		},
		{
			Name:      "license",
			Category:  "legal",
			Paths:     []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING", "LICENSE-MIT", "LICENSE-APACHE"},
			Severity:  entities.SeverityHigh,
			Rationale: "Clear licensing is required for open source projects and helps users understand usage rights.",
			Reference: "references/licensing.md",
		},
		{
			Name:     "ci-config",
			Category: "quality",
			Paths: []string{
				".github/workflows/*.yml", ".github/workflows/*.yaml", ".gitlab-ci.yml",
				".circleci/config.yml", ".travis.yml", "Jenkinsfile", "azure-pipelines.yml",
			},
			Severity:  entities.SeverityMedium,
			Rationale: "Continuous integration is the foundation for automated security checks on every change.",
			Reference: "references/ci-security.md",
		},
		{
			Name:     "automated-tests",
			Category: "quality",
			Paths: []string{
				"tests", "test", "__tests__", "spec",
				"*_test.go", "test_*.py", "*_test.py", "*.test.js", "*.spec.js", "*.test.ts", "*.spec.ts",
			},
			Severity:  entities.SeverityMedium,
			Rationale: "Tests help ensure security fixes don't introduce regressions.",
			Reference: "references/testing.md",
		},
		{
			Name:      "pull-request-template",
			Category:  "governance",
			Paths:     []string{".github/PULL_REQUEST_TEMPLATE.md", ".github/pull_request_template.md", "docs/pull_request_template.md"},
			Severity:  entities.SeverityMedium,
			Rationale: "PR templates encourage security-focused reviews and consistent review processes.",
			Reference: "templates/pull_request_template.md",
		},
		{
			Name:      "codeowners",
			Category:  "governance",
			Paths:     []string{"CODEOWNERS", ".github/CODEOWNERS", "docs/CODEOWNERS"},
			Severity:  entities.SeverityMedium,
			Rationale: "Ensures security-sensitive areas have designated reviewers.",
			Reference: "templates/CODEOWNERS",
		},
		{
			Name:      "scorecard-workflow",
			Category:  "security_scanning",
			Paths:     []string{".github/workflows/scorecard.yml", ".github/workflows/scorecard.yaml"},
			Severity:  entities.SeverityMedium,
			Rationale: "Continuous security posture monitoring with OpenSSF Scorecard helps identify issues early.",
			Reference: "templates/workflows/scorecard.yml",
		},
		{
			Name:     "codeql-workflow",
			Category: "security_scanning",
			Paths: []string{
				".github/workflows/codeql.yml", ".github/workflows/codeql.yaml",
				".github/workflows/codeql-analysis.yml", ".github/workflows/codeql-analysis.yaml",
			},
			Severity:  entities.SeverityMedium,
			Rationale: "Static analysis catches common vulnerability patterns automatically.",
			Reference: "templates/workflows/codeql.yml",
		},
		{
			Name:     "secrets-scanning",
			Category: "security_scanning",
			Paths: []string{
				".github/workflows/gitleaks.yml", ".github/workflows/gitleaks.yaml",
				".github/workflows/trufflehog.yml", ".github/workflows/trufflehog.yaml",
				".github/workflows/secrets.yml", ".github/workflows/secrets.yaml",
				".gitleaks.toml", ".gitleaks.yaml",
			},
			Severity:  entities.SeverityMedium,
			Rationale: "Secrets scanning detects leaked API keys, passwords, and tokens before they reach production.",
			Reference: "templates/workflows/gitleaks.yml",
		},
		{
			Name:      "sbom-present",
			Category:  "supply_chain",
			Paths:     []string{"sbom.json", "sbom.xml", "sbom.spdx", "sbom.spdx.json", "bom.json", "bom.xml"},
			Severity:  entities.SeverityMedium,
			Rationale: "A Software Bill of Materials improves supply chain transparency and helps with vulnerability tracking.",
			Reference: "references/sbom.md",
		},
		{
			Name:     "sbom-workflow",
			Category: "supply_chain",
			Paths: []string{
				".github/workflows/sbom.yml", ".github/workflows/sbom.yaml",
				".github/workflows/sbom-generation.yml", ".github/workflows/sbom-generation.yaml",
			},
			Severity:  entities.SeverityMedium,
			Rationale: "Automating SBOM generation ensures every release includes a software inventory.",
			Reference: "templates/workflows/sbom.yml",
		},
		{
			Name:     "slsa-provenance",
			Category: "supply_chain",
			Paths: []string{
				".github/workflows/slsa-provenance.yml", ".github/workflows/slsa-provenance.yaml",
				".github/workflows/slsa.yml", ".github/workflows/slsa.yaml",
				".github/workflows/provenance.yml", ".github/workflows/provenance.yaml",
			},
			Severity:  entities.SeverityMedium,
			Rationale: "SLSA provenance provides verifiable evidence of where and how artifacts were built.",
			Reference: "templates/workflows/slsa-provenance.yml",
		},
		{
			Name:      "threat-model",
			Category:  "documentation",
			Paths:     []string{"THREAT_MODEL.md", "docs/threat-model.md", "docs/security/threat-model.md", "THREATS.md"},
			Severity:  entities.SeverityMedium,
			Rationale: "Systematic threat identification helps prioritize security efforts.",
			Reference: "templates/THREAT_MODEL.md",
		},
		{
			Name:      "contributing",
			Category:  "documentation",
			Paths:     []string{"CONTRIBUTING.md", ".github/CONTRIBUTING.md"},
			Severity:  entities.SeverityLow,
			Rationale: "Helps contributors understand security requirements for pull requests.",
			Reference: "templates/CONTRIBUTING.md",
		},
		{
			Name:      "code-of-conduct",
			Category:  "documentation",
			Paths:     []string{"CODE_OF_CONDUCT.md", ".github/CODE_OF_CONDUCT.md"},
			Severity:  entities.SeverityLow,
			Rationale: "A code of conduct sets expectations for community interaction, including around security reports.",
			Reference: "templates/CODE_OF_CONDUCT.md",
		},
		{
			Name:      "security-txt",
			Category:  "documentation",
			Paths:     []string{".well-known/security.txt", "security.txt"},
			Severity:  entities.SeverityLow,
			Rationale: "A security.txt file (RFC 9116) publishes security contact information in a machine-readable form.",
			Reference: "templates/security.txt",
		},
		{
			Name:      "pre-commit-hooks",
			Category:  "quality",
			Paths:     []string{".pre-commit-config.yaml", ".pre-commit-config.yml"},
			Severity:  entities.SeverityLow,
			Rationale: "Pre-commit hooks catch security issues (secrets, linting) before code enters version control.",
			Reference: "templates/pre-commit-config.yaml",
		},
	}
}

func defaultCISystems() []entities.CISystem {
	return []entities.CISystem{
		{Name: "github_actions", Paths: []string{".github/workflows"}},
		{Name: "gitlab_ci", Paths: []string{".gitlab-ci.yml"}},
		{Name: "circle_ci", Paths: []string{".circleci/config.yml"}},
		{Name: "travis_ci", Paths: []string{".travis.yml"}},
		{Name: "jenkins", Paths: []string{"Jenkinsfile"}},
		{Name: "azure_pipelines", Paths: []string{"azure-pipelines.yml"}},
	}
}
