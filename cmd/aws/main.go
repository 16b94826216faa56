package main

import (
	"billstation/internal/config"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const PasswordResetSubject = "Reset your Billstation password"

const PasswordResetHtml = `<p>Hi {{fullName}},</p>
<p>Someone requested a password reset for your Billstation account.
If it was you, follow the link below to set a new password. The link
expires shortly after it was requested.</p>
<p><a href="{{passwordResetUrl}}">Reset password</a></p>
<p>If you did not request a reset, you can safely ignore this email.</p>`

const PasswordResetText = `Hi {{fullName}},

Someone requested a password reset for your Billstation account.
If it was you, open the link below to set a new password. The link
expires shortly after it was requested.

{{passwordResetUrl}}

If you did not request a reset, you can safely ignore this email.`

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	svc := newSesClient(cfg)

	switch os.Args[1] {
	case "create-password-reset-template":
		createTemplate(svc, cfg.AwsEmailPasswordResetTemplate, PasswordResetSubject, PasswordResetHtml, PasswordResetText)
	case "delete-password-reset-template":
		deleteTemplate(svc, cfg.AwsEmailPasswordResetTemplate)
	case "send-test-email":
		if len(os.Args) < 3 {
			usage()
		}
		sendTestEmail(svc, cfg, os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: aws <create-password-reset-template|delete-password-reset-template|send-test-email ADDRESS>")
	os.Exit(2)
}

func newSesClient(cfg *config.Config) *ses.Client {
	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return ses.NewFromConfig(awsCfg)
}

func createTemplate(svc *ses.Client, name, subject, htmlPart, textPart string) {
	input := &ses.CreateTemplateInput{
		Template: &types.Template{
			SubjectPart:  &subject,
			HtmlPart:     &htmlPart,
			TextPart:     &textPart,
			TemplateName: &name,
		},
	}
	result, err := svc.CreateTemplate(context.Background(), input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}

func deleteTemplate(svc *ses.Client, name string) {
	result, err := svc.DeleteTemplate(
		context.Background(),
		&ses.DeleteTemplateInput{
			TemplateName: &name,
		},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}

func sendTestEmail(svc *ses.Client, cfg *config.Config, to string) {
	args := `{"fullName": "Test User", "passwordResetUrl": "` + cfg.PasswordResetBaseUrl.String() + `/test-token"}`
	result, err := svc.SendTemplatedEmail(
		context.Background(),
		&ses.SendTemplatedEmailInput{
			Source: aws.String(cfg.AwsEmailSender),
			Destination: &types.Destination{
				ToAddresses: []string{to},
			},
			Template:     aws.String(cfg.AwsEmailPasswordResetTemplate),
			TemplateData: &args,
		},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}
