package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/datamode"
	"github.com/evzhukov/lifevault/internal/models"
	"github.com/evzhukov/lifevault/internal/services"
)

// Status prints the resolved data mode and a credential summary, including
// the token expiry when a real token is stored.
func (a *App) Status(ctx context.Context) error {
	local, err := a.mode.IsLocalOnly(ctx)
	if err != nil {
		return a.fail(ctx, "resolving data mode", err)
	}
	if local {
		fmt.Fprintln(a.out, "Mode: local-only")
	} else {
		fmt.Fprintln(a.out, "Mode: remote-backed")
	}

	authed, err := a.mode.HasCredential(ctx)
	if err != nil {
		return a.fail(ctx, "checking credential", err)
	}
	if !authed {
		fmt.Fprintln(a.out, "Credential: none")
		return nil
	}

	claims, err := a.mode.TokenClaims(ctx)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			fmt.Fprintln(a.out, "Credential: present (not a JWT)")
			return nil
		}
		return a.fail(ctx, "reading token claims", err)
	}
	if claims.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Credential: present, expires %s\n", claims.ExpiresAt.Time.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintln(a.out, "Credential: present")
	}
	return nil
}

// Persons lists person profiles.
func (a *App) Persons(ctx context.Context) error {
	persons, err := a.profiles.ListPersons(ctx)
	if err != nil {
		return a.fail(ctx, "listing persons", err)
	}
	for _, p := range persons {
		fmt.Fprintf(a.out, "%s  %s\n", p.ID, p.DisplayName())
	}
	fmt.Fprintf(a.out, "%d person(s)\n", len(persons))
	return nil
}

// Pets lists pet profiles.
func (a *App) Pets(ctx context.Context) error {
	pets, err := a.profiles.ListPets(ctx)
	if err != nil {
		return a.fail(ctx, "listing pets", err)
	}
	for _, p := range pets {
		fmt.Fprintf(a.out, "%s  %s (%s)\n", p.ID, p.PetName, p.Kind)
	}
	fmt.Fprintf(a.out, "%d pet(s)\n", len(pets))
	return nil
}

// Households lists household profiles.
func (a *App) Households(ctx context.Context) error {
	hs, err := a.profiles.ListHouseholds(ctx)
	if err != nil {
		return a.fail(ctx, "listing households", err)
	}
	for _, h := range hs {
		fmt.Fprintf(a.out, "%s  %s (%d members)\n", h.ID, h.Name, len(h.MemberIDs))
	}
	fmt.Fprintf(a.out, "%d household(s)\n", len(hs))
	return nil
}

// Records lists one profile's records.
func (a *App) Records(ctx context.Context, profileID string) error {
	recs, err := a.records.List(ctx, profileID)
	if err != nil {
		return a.fail(ctx, "listing records", err)
	}
	for _, r := range recs {
		fmt.Fprintf(a.out, "%s  %-20s  %s\n", r.ID, r.RecordType, r.Title)
	}
	fmt.Fprintf(a.out, "%d record(s)\n", len(recs))
	return nil
}

// Documents lists vault documents.
func (a *App) Documents(ctx context.Context) error {
	docs, err := a.documents.List(ctx)
	if err != nil {
		return a.fail(ctx, "listing documents", err)
	}
	for _, d := range docs {
		ocr := "no ocr"
		if d.OCR != nil {
			ocr = string(d.OCR.Status)
		}
		fmt.Fprintf(a.out, "%s  %s  [%s]\n", d.ID, d.URI, ocr)
	}
	fmt.Fprintf(a.out, "%d document(s)\n", len(docs))
	return nil
}

// AddPerson creates a person profile with just a first name.
func (a *App) AddPerson(ctx context.Context, firstName string) error {
	p, err := a.profiles.SavePerson(ctx, models.PersonProfile{FirstName: firstName})
	if err != nil {
		return a.fail(ctx, "saving person", err)
	}
	fmt.Fprintf(a.out, "Created person %s\n", p.ID)
	return nil
}

// AddPet creates a pet profile with just a name.
func (a *App) AddPet(ctx context.Context, petName string) error {
	p, err := a.profiles.SavePet(ctx, models.PetProfile{PetName: petName})
	if err != nil {
		return a.fail(ctx, "saving pet", err)
	}
	fmt.Fprintf(a.out, "Created pet %s\n", p.ID)
	return nil
}

// SetToken reads an access token without echo and stores it.
func (a *App) SetToken(ctx context.Context) error {
	token, err := GetSecret("Enter access token", a.out)
	if err != nil {
		return a.fail(ctx, "reading token", err)
	}
	if err := a.repos.Metadata.Set(ctx, datamode.KeyAccessToken, token); err != nil {
		return a.fail(ctx, "storing token", err)
	}
	fmt.Fprintln(a.out, "Token stored.")
	return nil
}

// LocalOnly toggles the persisted local-only preference.
func (a *App) LocalOnly(ctx context.Context, on bool) error {
	if err := a.mode.SetLocalOnly(ctx, on); err != nil {
		return a.fail(ctx, "setting data mode", err)
	}
	fmt.Fprintf(a.out, "Local-only mode: %v\n", on)
	return nil
}

// Sync pushes one profile's records to the backend.
func (a *App) Sync(ctx context.Context, profileID string) error {
	n, err := a.sync.PushRecords(ctx, profileID)
	if err != nil {
		if errors.Is(err, services.ErrLocalOnlyMode) {
			fmt.Fprintln(a.out, "Sync skipped: local-only mode.")
			return nil
		}
		if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Fprintln(a.out, "Sync skipped: no access token. Use settoken first.")
			return nil
		}
		return a.fail(ctx, "syncing records", err)
	}
	fmt.Fprintf(a.out, "Pushed %d record(s)\n", n)
	return nil
}

func (a *App) fail(ctx context.Context, what string, err error) error {
	fmt.Fprintf(a.out, "Error %s: %v\n", what, err)
	a.log.Error(ctx, what, "error", err)
	return err
}
