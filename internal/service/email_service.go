package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"hidrocascavel/internal/config"
)

type EmailService interface {
	SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error
	SendAnalysisApprovedEmail(ctx context.Context, toEmail, fullName, wellName string) error
	SendAnalysisRejectedEmail(ctx context.Context, toEmail, fullName, wellName, reason string) error
}

type emailService struct {
	client *resend.Client
	config *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &emailService{
		client: client,
		config: cfg,
	}
}

func (s *emailService) send(subject, toEmail, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("HidroCascavel <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *emailService) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	subject := "Verifique seu email - HidroCascavel"
	verificationLink := fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #0369a1; padding: 24px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="color: #ffffff; margin: 0;">HidroCascavel</h1>
		<p style="color: #bae6fd; margin: 8px 0 0 0;">Qualidade da água de poços</p>
	</div>
	<div style="background: #ffffff; padding: 24px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">
		<h2 style="margin-top: 0;">Olá, %s!</h2>
		<p>Obrigado por se cadastrar no HidroCascavel. Confirme seu email clicando no botão abaixo:</p>
		<p style="text-align: center;">
			<a href="%s" style="display: inline-block; background: #0369a1; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Verificar Email</a>
		</p>
		<p style="color: #6b7280; font-size: 13px;">Se você não criou esta conta, ignore este email.</p>
	</div>
</body>
</html>`, fullName, verificationLink)

	return s.send(subject, toEmail, html)
}

func (s *emailService) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	subject := "Redefinição de senha - HidroCascavel"
	resetLink := fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #0369a1; padding: 24px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="color: #ffffff; margin: 0;">HidroCascavel</h1>
	</div>
	<div style="background: #ffffff; padding: 24px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">
		<h2 style="margin-top: 0;">Olá, %s!</h2>
		<p>Recebemos um pedido para redefinir sua senha. O link abaixo é válido por 1 hora:</p>
		<p style="text-align: center;">
			<a href="%s" style="display: inline-block; background: #0369a1; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Redefinir Senha</a>
		</p>
		<p style="color: #6b7280; font-size: 13px;">Se você não pediu a redefinição, ignore este email.</p>
	</div>
</body>
</html>`, fullName, resetLink)

	return s.send(subject, toEmail, html)
}

func (s *emailService) SendAnalysisApprovedEmail(ctx context.Context, toEmail, fullName, wellName string) error {
	subject := "Análise aprovada - HidroCascavel"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #059669; padding: 24px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="color: #ffffff; margin: 0;">Análise Aprovada</h1>
	</div>
	<div style="background: #ffffff; padding: 24px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">
		<h2 style="margin-top: 0;">Olá, %s!</h2>
		<p>Sua análise do poço <strong>%s</strong> foi aprovada pela administração e já faz parte do registro oficial.</p>
		<p>Você pode consultar os detalhes no aplicativo.</p>
	</div>
</body>
</html>`, fullName, wellName)

	return s.send(subject, toEmail, html)
}

func (s *emailService) SendAnalysisRejectedEmail(ctx context.Context, toEmail, fullName, wellName, reason string) error {
	subject := "Análise rejeitada - HidroCascavel"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #b91c1c; padding: 24px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="color: #ffffff; margin: 0;">Análise Rejeitada</h1>
	</div>
	<div style="background: #ffffff; padding: 24px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">
		<h2 style="margin-top: 0;">Olá, %s!</h2>
		<p>Sua análise do poço <strong>%s</strong> foi rejeitada pela administração.</p>
		<div style="background: #fef2f2; padding: 16px; border-radius: 8px; margin: 16px 0;">
			<strong>Motivo:</strong> %s
		</div>
		<p>Revise os dados e submeta uma nova solicitação se necessário.</p>
	</div>
</body>
</html>`, fullName, wellName, reason)

	return s.send(subject, toEmail, html)
}
