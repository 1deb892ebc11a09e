package opengl

import "fmt"

// lit vertex shader: world position and normal out, plus the light-space
// position for the shadow lookup.
const litVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 mvp;
uniform mat4 model;
uniform mat4 normalMatrix;
uniform mat4 lightViewProj;

out vec3 fragNormal;
out vec3 fragWorldPos;
out vec4 fragLightSpacePos;

void main() {
    vec4 worldPos     = model * vec4(inPosition, 1.0);
    fragWorldPos      = worldPos.xyz;
    fragNormal        = mat3(normalMatrix) * inNormal;
    fragLightSpacePos = lightViewProj * worldPos;
    gl_Position       = mvp * vec4(inPosition, 1.0);
}
` + "\x00"

// lit fragment shader: Lambert diffuse from ambient, hemisphere and up to
// maxDirectional directional lights, with a soft roughness-driven highlight.
var litFragSrc = fmt.Sprintf(`
#version 410 core
#define MAX_DIRECTIONAL %d

in vec3 fragNormal;
in vec3 fragWorldPos;
in vec4 fragLightSpacePos;

out vec4 outColor;

uniform vec3 ambientColor;
uniform vec3 skyColor;
uniform vec3 groundColor;

uniform int  dirCount;
uniform vec3 dirDirection[MAX_DIRECTIONAL];
uniform vec3 dirColor[MAX_DIRECTIONAL];

uniform vec3 cameraPos;

uniform vec3  matColor;
uniform vec3  matEmissive;
uniform float matRoughness;
uniform float matMetalness;
uniform float matOpacity;
uniform bool  doubleSided;

uniform sampler2DShadow shadowMap;
uniform bool  receiveShadow;
uniform float shadowBias;
uniform float shadowTexel;

float calcShadow() {
    vec3 p = fragLightSpacePos.xyz / fragLightSpacePos.w;
    p = p * 0.5 + 0.5;
    if (p.z > 1.0) return 1.0;
    float shadow = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            shadow += texture(shadowMap, vec3(p.xy + vec2(float(x), float(y)) * shadowTexel, p.z + shadowBias));
        }
    }
    return shadow / 9.0;
}

void main() {
    vec3 N = normalize(fragNormal);
    if (doubleSided && !gl_FrontFacing) {
        N = -N;
    }
    vec3 V = normalize(cameraPos - fragWorldPos);

    float hemi = N.y * 0.5 + 0.5;
    vec3 color = (ambientColor + mix(groundColor, skyColor, hemi)) * matColor;

    float shadowFactor = receiveShadow ? calcShadow() : 1.0;
    float shininess = mix(64.0, 4.0, clamp(matRoughness, 0.0, 1.0));
    vec3  specTint  = mix(vec3(0.04), matColor, matMetalness) * (1.0 - matRoughness);
    for (int i = 0; i < dirCount && i < MAX_DIRECTIONAL; i++) {
        vec3  L   = normalize(-dirDirection[i]);
        float NdL = max(dot(N, L), 0.0);
        float lit = (i == 0) ? shadowFactor : 1.0;
        color += lit * dirColor[i] * NdL * matColor * (1.0 - matMetalness * 0.5);
        if (NdL > 0.0) {
            vec3 H = normalize(L + V);
            color += lit * dirColor[i] * specTint * pow(max(dot(N, H), 0.0), shininess);
        }
    }

    color += matEmissive;
    outColor = vec4(color, matOpacity);
}
`, maxDirectional) + "\x00"

// depth-only vertex shader for the shadow map pass
const depthVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
uniform mat4 lightMVP;
void main() {
    gl_Position = lightMVP * vec4(inPosition, 1.0);
}
` + "\x00"

const depthFragSrc = `
#version 410 core
void main() {}
` + "\x00"
