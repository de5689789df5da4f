package chatbot

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const basePrompt = `You are the virtual receptionist of a beauty salon.
Answer briefly and politely in the language the customer writes in.
Only recommend services and branches listed below. Do not invent prices.
To book, tell the customer to pick a service, branch, date and time in the booking page.`

// BuildSystemPrompt gives the model the salon's current catalog.
func BuildSystemPrompt(services []models.Service, branches []models.Branch) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	if len(services) > 0 {
		b.WriteString("\n\nServices:\n")
		for _, s := range services {
			fmt.Fprintf(&b, "- %s: %d VND, %d minutes", s.Name, s.Price, s.DurationMin)
			if s.Description != "" {
				fmt.Fprintf(&b, " (%s)", s.Description)
			}
			b.WriteByte('\n')
		}
	}

	if len(branches) > 0 {
		b.WriteString("\nBranches:\n")
		for _, br := range branches {
			fmt.Fprintf(&b, "- %s, %s", br.Name, br.Address)
			if br.Phone != "" {
				fmt.Fprintf(&b, ", tel %s", br.Phone)
			}
			b.WriteByte('\n')
		}
	}

	return b.String()
}
