package models

import "testing"

func TestQuestionInputValidate(t *testing.T) {
	valid := QuestionInput{
		Text:          "What is 2+2?",
		Options:       []Option{{ID: "a", Text: "4"}, {ID: "b", Text: "5"}},
		CorrectOption: "a",
		Subject:       "65f000000000000000000001",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*QuestionInput)
		wantMsg string
	}{
		{
			name:    "missing text",
			mutate:  func(in *QuestionInput) { in.Text = "" },
			wantMsg: "Question text is required",
		},
		{
			name:    "missing subject",
			mutate:  func(in *QuestionInput) { in.Subject = "" },
			wantMsg: "Subject is required",
		},
		{
			name:    "malformed subject",
			mutate:  func(in *QuestionInput) { in.Subject = "not-a-hex" },
			wantMsg: "Invalid subject ID",
		},
		{
			name: "malformed subject reported before option count",
			mutate: func(in *QuestionInput) {
				in.Subject = "not-a-hex"
				in.Options = in.Options[:1]
			},
			wantMsg: "Invalid subject ID",
		},
		{
			name:    "too few options",
			mutate:  func(in *QuestionInput) { in.Options = in.Options[:1] },
			wantMsg: "At least two options are required",
		},
		{
			name:    "no options",
			mutate:  func(in *QuestionInput) { in.Options = nil },
			wantMsg: "At least two options are required",
		},
		{
			name: "option without text",
			mutate: func(in *QuestionInput) {
				in.Options = []Option{{ID: "a", Text: "4"}, {ID: "b", Text: ""}}
			},
			wantMsg: "Option b text is required",
		},
		{
			name:    "correct option not in options",
			mutate:  func(in *QuestionInput) { in.CorrectOption = "z" },
			wantMsg: "Correct option must exist in options array",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			in.Options = append([]Option{}, valid.Options...)
			tc.mutate(&in)

			err := in.Validate()
			if err == nil {
				t.Fatalf("expected error %q, got nil", tc.wantMsg)
			}
			if err.Error() != tc.wantMsg {
				t.Fatalf("got %q, want %q", err.Error(), tc.wantMsg)
			}
		})
	}
}
