package utils

import (
	"fmt"

	"fleura_back_end/internal/models"
)

func emailShell(title, inner string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>%s</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		%s
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Fleura</strong>
		</p>
	</div>
</body>
</html>`, title, inner)
}

// GenerateVerificationEmailHTML : code à 6 chiffres, valable 15 minutes.
func GenerateVerificationEmailHTML(name, code string) string {
	inner := fmt.Sprintf(`
		<h2 style="color: #333;">Vérification de votre adresse e-mail</h2>
		<p>Bonjour <b>%s</b>,</p>
		<p>Merci de votre inscription chez Fleura. Voici votre code de vérification :</p>
		<p style="text-align: center; margin: 30px 0;">
			<span style="font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #2e7d32;">%s</span>
		</p>
		<p style="font-size: 14px; color: #888;">Ce code est valable pendant 15 minutes.</p>`, name, code)
	return emailShell("Vérification de votre e-mail", inner)
}

// GenerateWelcomeEmailHTML : envoyé une fois le compte vérifié.
func GenerateWelcomeEmailHTML(name string) string {
	inner := fmt.Sprintf(`
		<h2 style="color: #333;">Bienvenue chez Fleura 🌸</h2>
		<p>Bonjour <b>%s</b>,</p>
		<p>Votre compte est activé. Découvrez nos bouquets de saison et les
		annonces de nos fleuristes partenaires.</p>`, name)
	return emailShell("Bienvenue chez Fleura", inner)
}

// GeneratePasswordResetHTML : lien valable 1 heure, usage unique.
func GeneratePasswordResetHTML(name, resetLink string) string {
	inner := fmt.Sprintf(`
		<h2 style="color: #333;">Réinitialisation de votre mot de passe</h2>
		<p>Bonjour <b>%s</b>,</p>
		<p>Vous avez demandé à réinitialiser votre mot de passe Fleura.</p>
		<p style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #2e7d32; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Réinitialiser mon mot de passe</a>
		</p>
		<p style="font-size: 14px; color: #888; border-left: 3px solid #ffa500; padding-left: 15px; margin-top: 20px;">
			<strong>⚠️ Attention :</strong> Ce lien est valable pendant 1 heure seulement.
		</p>
		<p style="font-size: 14px; color: #888; margin-top: 20px;">
			Si vous n'avez pas demandé cette réinitialisation, ignorez simplement cet email.
		</p>`, name, resetLink)
	return emailShell("Réinitialisation de mot de passe", inner)
}

// GenerateOrderConfirmationHTML génère le récapitulatif de commande.
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, d := range order.Details {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f€</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f€</td>
			</tr>`, d.FlowerName, d.Quantity, float64(d.UnitPrice)/100, float64(d.LineTotal)/100)
	}

	inner := fmt.Sprintf(`
		<h2 style="color: #333;">Confirmation de votre commande %s</h2>
		<p>Bonjour,</p>
		<p>Votre commande a été confirmée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Fleur</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p style="text-align: right; font-size: 18px;"><strong>Total : %.2f€</strong></p>`,
		order.OrderNo, itemsHTML, float64(order.Total)/100)
	return emailShell("Confirmation de commande", inner)
}
