package ssm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
)

type SSMAPI interface {
	GetServiceSetting(ctx context.Context, params *awsssm.GetServiceSettingInput, optFns ...func(*awsssm.Options)) (*awsssm.GetServiceSettingOutput, error)
	UpdateServiceSetting(ctx context.Context, params *awsssm.UpdateServiceSettingInput, optFns ...func(*awsssm.Options)) (*awsssm.UpdateServiceSettingOutput, error)
}

type Client struct {
	api    SSMAPI
	dryRun bool
}

func NewClient(api SSMAPI, dryRun bool) *Client {
	return &Client{api: api, dryRun: dryRun}
}

// PublicSharing returns the current value of the public sharing setting.
func (c *Client) PublicSharing(ctx context.Context) (string, error) {
	out, err := c.api.GetServiceSetting(ctx, &awsssm.GetServiceSettingInput{
		SettingId: aws.String(PublicSharingSettingID),
	})
	if err != nil {
		return "", fmt.Errorf("GetServiceSetting: %w", err)
	}
	if out.ServiceSetting == nil {
		return "", fmt.Errorf("GetServiceSetting: no setting returned for %s", PublicSharingSettingID)
	}
	return aws.ToString(out.ServiceSetting.SettingValue), nil
}

// BlockPublicSharing moves the setting from Enable to Disable. Any other
// current value is left alone, so repeated calls issue no update.
// The observed value is returned alongside the outcome.
func (c *Client) BlockPublicSharing(ctx context.Context) (Outcome, string, error) {
	current, err := c.PublicSharing(ctx)
	if err != nil {
		return "", "", err
	}
	if current != SharingEnabled {
		return OutcomeUnchanged, current, nil
	}
	if c.dryRun {
		return OutcomeWouldDisable, current, nil
	}

	_, err = c.api.UpdateServiceSetting(ctx, &awsssm.UpdateServiceSettingInput{
		SettingId:    aws.String(PublicSharingSettingID),
		SettingValue: aws.String(SharingDisabled),
	})
	if err != nil {
		return "", current, fmt.Errorf("UpdateServiceSetting: %w", err)
	}
	return OutcomeDisabled, current, nil
}
