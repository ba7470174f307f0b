package emit

const fileTemplate = `// Generated by {{ .Generator }}{{ with .Source }} from {{ . }}{{ end }} in antlr4-autosuggest project. DO NOT EDIT.
const autosuggest = require('{{ .AutosuggestModule }}');
{{ range .Names -}}
const {{ . }}Lexer = require('{{ $.ImportDir }}/{{ . }}Lexer');
const {{ . }}Parser = require('{{ $.ImportDir }}/{{ . }}Parser');
{{ end }}
describe('Autosuggest', function () {
    let completions;
    let storedLexerCtr;
    let storedParserCtr;
    let storedCasePreference;

    const givenGrammar = function (lexerCtr, parserCtr) {
        storedLexerCtr = lexerCtr;
        storedParserCtr = parserCtr;
    };
    const withCasePreference = function (casePreference) {
        storedCasePreference = casePreference;
    };
    const whenInput = function (input) {
        let suggester = autosuggest.autosuggester(storedLexerCtr, storedParserCtr, storedCasePreference);
        completions = suggester.autosuggest(input);
    };
    const thenExpect = function (expectedSuggestions) {
        expect(completions.sort()).toEqual(expectedSuggestions.sort());
    };

    beforeEach(function () {
        storedCasePreference = undefined;
    });
{{ range .Records }}
{{ template "case" . }}{{ end }}});
`

const caseTemplate = `    it('should handle grammar "{{ .EmbeddableGrammar }}" with input "{{ .EmbeddableInput }}"', function () {
        givenGrammar({{ .Name }}Lexer.{{ .Name }}Lexer, {{ .Name }}Parser.{{ .Name }}Parser);
{{ if .CasePreference }}        withCasePreference('{{ .EmbeddableCasePreference }}');
{{ end }}        whenInput('{{ .EmbeddableInput }}');
        thenExpect({{ expected .Output }});
    });
`
