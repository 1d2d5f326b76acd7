package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// Envelope is the wire shape of a command: {"type": "ADD_SKILL", "payload": {...}}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type updatePayload[P any] struct {
	ID   string `json:"id"`
	Data P      `json:"data"`
}

type analysisPayload struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

type decoder func(payload json.RawMessage) (Command, error)

var decoders = map[string]decoder{
	TypeUpdatePersonalInfo: func(p json.RawMessage) (Command, error) {
		var patch types.PersonalInfoPatch
		if err := decodePayload(p, &patch); err != nil {
			return nil, err
		}
		return UpdatePersonalInfo{Patch: patch}, nil
	},

	TypeAddExperience:    decodeAdd(func(e types.ExperienceEntry) Command { return AddExperience{Entry: e} }),
	TypeUpdateExperience: decodeUpdate(func(id string, p types.ExperiencePatch) Command { return UpdateExperience{ID: id, Patch: p} }),
	TypeDeleteExperience: decodeID(func(id string) Command { return DeleteExperience{ID: id} }),

	TypeAddEducation:    decodeAdd(func(e types.EducationEntry) Command { return AddEducation{Entry: e} }),
	TypeUpdateEducation: decodeUpdate(func(id string, p types.EducationPatch) Command { return UpdateEducation{ID: id, Patch: p} }),
	TypeDeleteEducation: decodeID(func(id string) Command { return DeleteEducation{ID: id} }),

	TypeAddSkill:    decodeAdd(func(e types.SkillEntry) Command { return AddSkill{Entry: e} }),
	TypeUpdateSkill: decodeUpdate(func(id string, p types.SkillPatch) Command { return UpdateSkill{ID: id, Patch: p} }),
	TypeDeleteSkill: decodeID(func(id string) Command { return DeleteSkill{ID: id} }),

	TypeAddProject:    decodeAdd(func(e types.ProjectEntry) Command { return AddProject{Entry: e} }),
	TypeUpdateProject: decodeUpdate(func(id string, p types.ProjectPatch) Command { return UpdateProject{ID: id, Patch: p} }),
	TypeDeleteProject: decodeID(func(id string) Command { return DeleteProject{ID: id} }),

	TypeAddCertification:    decodeAdd(func(e types.CertificationEntry) Command { return AddCertification{Entry: e} }),
	TypeUpdateCertification: decodeUpdate(func(id string, p types.CertificationPatch) Command { return UpdateCertification{ID: id, Patch: p} }),
	TypeDeleteCertification: decodeID(func(id string) Command { return DeleteCertification{ID: id} }),

	TypeAddLanguage:    decodeAdd(func(e types.LanguageEntry) Command { return AddLanguage{Entry: e} }),
	TypeUpdateLanguage: decodeUpdate(func(id string, p types.LanguagePatch) Command { return UpdateLanguage{ID: id, Patch: p} }),
	TypeDeleteLanguage: decodeID(func(id string) Command { return DeleteLanguage{ID: id} }),

	TypeAddInterest:    decodeAdd(func(e types.InterestEntry) Command { return AddInterest{Entry: e} }),
	TypeUpdateInterest: decodeUpdate(func(id string, p types.InterestPatch) Command { return UpdateInterest{ID: id, Patch: p} }),
	TypeDeleteInterest: decodeID(func(id string) Command { return DeleteInterest{ID: id} }),

	TypeAddCustomSection:    decodeAdd(func(e types.CustomSectionEntry) Command { return AddCustomSection{Entry: e} }),
	TypeUpdateCustomSection: decodeUpdate(func(id string, p types.CustomSectionPatch) Command { return UpdateCustomSection{ID: id, Patch: p} }),
	TypeDeleteCustomSection: decodeID(func(id string) Command { return DeleteCustomSection{ID: id} }),

	TypeChangeTemplate: decodeID(func(id string) Command { return ChangeTemplate{TemplateID: id} }),

	TypeSetAnalysis: func(p json.RawMessage) (Command, error) {
		var a analysisPayload
		if err := decodePayload(p, &a); err != nil {
			return nil, err
		}
		if a.Suggestions == nil {
			a.Suggestions = []string{}
		}
		return SetAnalysis{Result: types.AnalysisResult{Score: a.Score, Suggestions: a.Suggestions}}, nil
	},

	TypeLoadResume: func(p json.RawMessage) (Command, error) {
		var r types.Resume
		if err := decodePayload(p, &r); err != nil {
			return nil, err
		}
		return LoadResume{Resume: r}, nil
	},

	TypeResetResume: func(json.RawMessage) (Command, error) {
		return ResetResume{}, nil
	},
}

// DecodeCommand decodes a single command envelope.
func DecodeCommand(data []byte) (Command, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &CommandError{Message: "invalid command envelope", Cause: err}
	}
	return env.Command()
}

// DecodeCommands decodes a JSON array of command envelopes.
func DecodeCommands(data []byte) ([]Command, error) {
	var envs []Envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, &CommandError{Message: "invalid command list", Cause: err}
	}
	cmds := make([]Command, 0, len(envs))
	for i, env := range envs {
		cmd, err := env.Command()
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Command decodes the payload according to the envelope type.
func (e Envelope) Command() (Command, error) {
	typ := strings.ToUpper(strings.TrimSpace(e.Type))
	dec, ok := decoders[typ]
	if !ok {
		return nil, &CommandError{Type: e.Type, Message: "unknown command type"}
	}
	cmd, err := dec(e.Payload)
	if err != nil {
		return nil, &CommandError{Type: typ, Message: "invalid payload", Cause: err}
	}
	return cmd, nil
}

// KnownTypes returns every command type accepted by DecodeCommand.
func KnownTypes() []string {
	out := make([]string, 0, len(decoders))
	for t := range decoders {
		out = append(out, t)
	}
	return out
}

func decodeAdd[T any](wrap func(T) Command) decoder {
	return func(p json.RawMessage) (Command, error) {
		var entry T
		if err := decodePayload(p, &entry); err != nil {
			return nil, err
		}
		return wrap(entry), nil
	}
}

func decodeUpdate[P any](wrap func(string, P) Command) decoder {
	return func(p json.RawMessage) (Command, error) {
		var u updatePayload[P]
		if err := decodePayload(p, &u); err != nil {
			return nil, err
		}
		return wrap(u.ID, u.Data), nil
	}
}

func decodeID(wrap func(string) Command) decoder {
	return func(p json.RawMessage) (Command, error) {
		var id string
		if err := decodePayload(p, &id); err != nil {
			return nil, err
		}
		return wrap(id), nil
	}
}

func decodePayload(p json.RawMessage, v any) error {
	if len(p) == 0 {
		return fmt.Errorf("missing payload")
	}
	return json.Unmarshal(p, v)
}
