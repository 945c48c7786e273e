package assistant

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Messages returned to callers. The underlying provider error is only logged.
const (
	NotConfiguredMessage = "Erreur : Clé API non configurée."
	FailureMessage       = "Une erreur est survenue lors de la communication avec l'IA. Veuillez réessayer."
	SummaryFailedMessage = "Impossible de générer l'analyse. Veuillez réessayer."
)

var (
	ErrUnknownUseCase = errors.New("unknown use case")
	ErrGeneration     = errors.New(FailureMessage)
	ErrSummary        = errors.New(SummaryFailedMessage)
)

// UseCase selects the system instruction, temperature and default template.
type UseCase string

const (
	UseCaseIdeas        UseCase = "ideas"
	UseCaseDescription  UseCase = "description"
	UseCaseReviews      UseCase = "reviews"
	UseCaseForecast     UseCase = "forecast"
	UseCaseOptimization UseCase = "optimization"
	UseCaseDailySummary UseCase = "daily_summary"
)

// Placeholders filled from live data when the caller does not supply them.
const (
	PlaceholderOrders    = "orders"
	PlaceholderMenuItems = "menuItems"
)

type profile struct {
	system      string
	temperature *float64
	template    string
}

func temp(t float64) *float64 { return &t }

var profiles = map[UseCase]profile{
	UseCaseIdeas: {
		system:      "Tu es un chef cuisinier innovant et un mixologue expert. Tes réponses doivent être inspirantes, concises et formatées de manière claire avec des titres pour chaque idée.",
		temperature: temp(0.8),
		template:    `Génère 3 idées créatives de plats ou de boissons pour un restaurant sur le thème "{{theme}}". Pour chaque idée, donne un nom accrocheur, une brève description et les ingrédients clés.`,
	},
	UseCaseDescription: {
		system:      "Tu es un rédacteur culinaire spécialisé dans la création de descriptions de menus qui donnent faim. Utilise un langage évocateur et sensoriel.",
		temperature: temp(0.7),
		template:    `Rédige une description de menu alléchante et concise (environ 30-40 mots) pour un plat nommé "{{dishName}}". Mets en valeur les saveurs et les ingrédients de qualité.`,
	},
	UseCaseReviews: {
		system: "Tu es un analyste de données spécialisé dans les retours clients pour l'industrie de la restauration. Ton analyse doit être objective, structurée et orientée vers l'action.",
		template: "Voici une liste d'avis de clients pour un restaurant. Analyse-les et fournis un résumé concis. Le résumé doit inclure :\n" +
			"1.  Les points positifs récurrents.\n" +
			"2.  Les points négatifs récurrents.\n" +
			"3.  Une suggestion d'amélioration exploitable.\n\n" +
			"Avis :\n{{reviews}}",
	},
	UseCaseForecast: {
		system:      "Tu es un analyste de données expert, spécialisé dans la prévision des ventes pour le secteur de la restauration. Tes prévisions sont basées sur des données et tes conseils sont pratiques et exploitables.",
		temperature: temp(0.6),
		template: "En tant qu'analyste de données senior pour une chaîne de restaurants, analyse les données de ventes historiques suivantes et génère une prévision des ventes pour {{period}}.\n\n" +
			"Données de ventes historiques (horodatages, articles, totaux) :\n{{orders}}",
	},
	UseCaseOptimization: {
		system:      "Tu es un consultant en restauration de renommée mondiale. Ton expertise est de transformer les données de ventes en stratégies de menu rentables. Sois direct, clair et orienté vers l'action.",
		temperature: temp(0.6),
		template: `En tant que consultant expert en restauration spécialisé en "menu engineering", analyse la liste des plats du menu et l'historique des commandes fournis ci-dessous.

**Menu Actuel :**
{{menuItems}}

**Historique des Commandes :**
{{orders}}

Fournis une analyse stratégique complète et exploitable. Ta réponse doit être structurée comme suit, en utilisant le markdown :

### Analyse d'Optimisation du Menu

**1. Vos "Stars" (Haute popularité)**
   - Liste les plats qui sont fréquemment commandés. Ce sont les piliers de ton menu.

**2. Vos "Dilemmes" (Basse popularité)**
   - Liste les plats qui sont rarement commandés.
   - Pour chaque plat, suggère une action : le reformuler, mieux le positionner sur le menu, ou former le personnel pour le recommander.

**3. Vos "Poids Morts" (À reconsidérer)**
   - Identifie les plats qui ne se vendent presque jamais. Suggère de les retirer du menu pour simplifier les opérations et réduire les coûts.

**4. Recommandations Stratégiques**
   - Fournis 2 à 3 conseils clairs et concis pour améliorer la rentabilité globale du menu. Par exemple, suggérer une promotion croisée, un ajustement de prix mineur sur une "Star", ou la création d'un menu dégustation.
`,
	},
	UseCaseDailySummary: {
		system:      "Tu es un consultant en restauration qui fournit des informations claires, concises et exploitables à partir des données de vente.",
		temperature: temp(0.5),
		template: `En tant que consultant expert en gestion de restaurant, analyse les données de commande suivantes pour la journée et fournis un résumé concis et exploitable.

Données des commandes :
{{orders}}

Ton résumé doit inclure :
1.  Un aperçu des performances clés (revenu total, nombre de commandes).
2.  L'article ou la catégorie le plus populaire.
3.  Une observation ou une suggestion d'amélioration basée sur les données (par exemple, les heures de pointe, les articles peu vendus, etc.).

Rends le résumé facile à lire, en utilisant des points ou des titres.`,
	},
}

func ParseUseCase(s string) (UseCase, error) {
	uc := UseCase(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := profiles[uc]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUseCase, s)
	}
	return uc, nil
}

// DefaultTemplates returns the built-in prompt template of every use case.
func DefaultTemplates() map[UseCase]string {
	out := make(map[UseCase]string, len(profiles))
	for uc, p := range profiles {
		out[uc] = p.template
	}
	return out
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Render replaces every {{name}} whose name is in values. Unknown
// placeholders are left as they are.
func Render(template string, values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(template, func(token string) string {
		name := placeholder.FindStringSubmatch(token)[1]
		if v, ok := values[name]; ok {
			return v
		}
		return token
	})
}

// Placeholders lists the distinct placeholder names in template, in order of
// first appearance.
func Placeholders(template string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range placeholder.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
